package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// SwaggerUI serves a minimal page that renders /docs/openapi.yaml with the
// swagger-ui bundle off the unpkg CDN. No codegen, the yaml is the source of
// truth.
func SwaggerUI(ctx *gin.Context) {
	const page = `<!doctype html>
<html lang="en">
<head>
  <meta charset="utf-8">
  <meta name="viewport" content="width=device-width, initial-scale=1">
  <title>TalentHub API</title>
  <link rel="stylesheet" href="https://unpkg.com/swagger-ui-dist@5/swagger-ui.css">
</head>
<body>
  <div id="ui"></div>
  <script src="https://unpkg.com/swagger-ui-dist@5/swagger-ui-bundle.js"></script>
  <script>
    SwaggerUIBundle({
      url: "/docs/openapi.yaml",
      dom_id: "#ui",
      deepLinking: true,
      presets: [SwaggerUIBundle.presets.apis],
    });
  </script>
</body>
</html>`

	ctx.Data(http.StatusOK, "text/html; charset=utf-8", []byte(page))
}
