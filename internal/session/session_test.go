package session_test

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/mjtech-br/catalog-proxy/internal/session"
)

func TestSession_Empty(t *testing.T) {
	t.Parallel()

	s := session.New()

	assert.Empty(t, s.SellerID())

	id := s.Snapshot()
	assert.Empty(t, id.UserID)
	assert.Empty(t, id.SellerID)
	assert.False(t, id.Confirmed)
}

func TestSession_NewWithSeller(t *testing.T) {
	t.Parallel()

	s := session.NewWithSeller("987654321")

	assert.Equal(t, "987654321", s.SellerID())

	id := s.Snapshot()
	assert.Equal(t, "987654321", id.SellerID)
	assert.True(t, id.Confirmed)
}

func TestSession_SetIdentity(t *testing.T) {
	t.Parallel()

	s := session.New()
	s.SetIdentity("111", "111", true)

	id := s.Snapshot()
	assert.Equal(t, "111", id.UserID)
	assert.Equal(t, "111", id.SellerID)
	assert.True(t, id.Confirmed)

	// Last write wins.
	s.SetIdentity("222", "222", false)
	id = s.Snapshot()
	assert.Equal(t, "222", id.SellerID)
	assert.False(t, id.Confirmed)
}

func TestSession_ConcurrentAccess(t *testing.T) {
	t.Parallel()

	s := session.New()

	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(2)
		go func() {
			defer wg.Done()
			s.SetIdentity("123", "123", true)
		}()
		go func() {
			defer wg.Done()
			_ = s.Snapshot()
		}()
	}
	wg.Wait()

	assert.Equal(t, "123", s.SellerID())
}
