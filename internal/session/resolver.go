package session

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"

	"github.com/mjtech-br/catalog-proxy/internal/meli"
)

// Resolver discovers the authenticated account's user id and seller id
// through the users endpoints and stores the outcome in the Session.
type Resolver struct {
	users   meli.UserAPI
	session *Session
	log     *slog.Logger
}

// NewResolver creates a Resolver writing into sess.
func NewResolver(users meli.UserAPI, sess *Session, log *slog.Logger) *Resolver {
	return &Resolver{users: users, session: sess, log: log}
}

// Resolve determines the seller identity. The /users/me lookup must
// succeed; the follow-up profile lookup is best-effort and only decides
// whether the seller flag is confirmed. When the profile lookup fails, the
// user id is still assumed to be the seller id so the feed stays usable;
// non-sellers may end up queried as sellers, which is a deliberate
// availability trade-off.
//
// Idempotent: once the session holds a seller id, Resolve returns it
// without network calls.
func (r *Resolver) Resolve(ctx context.Context) (Identity, error) {
	if id := r.session.Snapshot(); id.SellerID != "" {
		return id, nil
	}

	me, err := r.users.Me(ctx)
	if err != nil {
		return Identity{}, fmt.Errorf("resolving authenticated user: %w", err)
	}

	userID := strconv.FormatInt(me.ID, 10)
	confirmed := false

	profile, err := r.users.Get(ctx, userID)
	switch {
	case err != nil:
		r.log.Warn("seller profile lookup failed, assuming user is the seller",
			"user_id", userID,
			"error", err,
		)
	case profile.SellerReputation != nil:
		confirmed = true
		r.log.Info("seller confirmed",
			"user_id", userID,
			"power_seller_status", profile.SellerReputation.PowerSellerStatus,
		)
	default:
		r.log.Warn("profile has no seller reputation, assuming user is the seller",
			"user_id", userID,
		)
	}

	r.session.SetIdentity(userID, userID, confirmed)

	return Identity{UserID: userID, SellerID: userID, Confirmed: confirmed}, nil
}
