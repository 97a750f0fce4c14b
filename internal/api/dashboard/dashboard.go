// Package dashboard serves the small HTML status page at the root path.
package dashboard

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

const pageHTML = `<!DOCTYPE html>
<html lang="pt-BR">
<head>
  <meta charset="UTF-8">
  <meta name="viewport" content="width=device-width, initial-scale=1.0">
  <title>MJ TECH — Catalog Proxy</title>
  <style>
    body { font-family: 'Segoe UI', sans-serif; background: #16213e; color: #fff;
           max-width: 720px; margin: 40px auto; padding: 0 20px; }
    h1 { color: #4a90e2; }
    .badge { background: #25D366; color: #fff; padding: 4px 12px; border-radius: 12px;
             font-size: 0.85rem; font-weight: bold; }
    ul { list-style: none; padding: 0; }
    li { margin: 10px 0; padding: 12px; background: rgba(255,255,255,0.06);
         border-radius: 8px; }
    a { color: #b6e0ff; text-decoration: none; }
    a:hover { color: #4a90e2; }
    code { background: rgba(0,0,0,0.35); padding: 2px 8px; border-radius: 4px; }
  </style>
</head>
<body>
  <h1>MJ TECH Catalog Proxy</h1>
  <p>Feed de produtos do Mercado Livre, atualizado a cada 30 minutos.
     <span class="badge">ONLINE</span></p>
  <ul>
    <li><a href="/api/products"><code>GET /api/products</code></a> — feed de produtos</li>
    <li><a href="/api/health"><code>GET /api/health</code></a> — diagnóstico do serviço</li>
    <li><a href="/api/config"><code>GET /api/config</code></a> — configuração (mascarada)</li>
    <li><a href="/api/refresh"><code>GET /api/refresh</code></a> — forçar atualização do cache</li>
    <li><a href="/metrics"><code>GET /metrics</code></a> — métricas Prometheus</li>
  </ul>
</body>
</html>`

// RegisterRoutes adds the status page to the Echo instance.
func RegisterRoutes(e *echo.Echo) {
	e.GET("/", servePage)
}

func servePage(c echo.Context) error {
	return c.HTML(http.StatusOK, pageHTML)
}
