package handlers

import (
	"bytes"
	"html/template"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"github.com/swaggo/swag"

	"github.com/macalbert/cdk-intro-workshop/docs"
	"github.com/macalbert/cdk-intro-workshop/internal/config"
)

// @title CDK Workshop API
// @version 1.0.0
// @description Demo API for CDK Workshop - A comprehensive API showcasing different deployment strategies
// @license.name MIT
// @license.url https://opensource.org/licenses/MIT
// @BasePath /

// @securityDefinitions.apikey ApiKeyAuth
// @in header
// @name x-api-key

var redocTemplate = template.Must(template.New("redoc").Parse(`<!DOCTYPE html>
<html>
<head>
<title>{{.Title}} - ReDoc</title>
<meta charset="utf-8"/>
<meta name="viewport" content="width=device-width, initial-scale=1">
<link href="https://fonts.googleapis.com/css?family=Montserrat:300,400,700|Roboto:300,400,700" rel="stylesheet">
<style>body { margin: 0; padding: 0; }</style>
</head>
<body>
<noscript>ReDoc requires Javascript to function. Please enable it to browse the documentation.</noscript>
<redoc spec-url="{{.SpecURL}}"></redoc>
<script src="https://cdn.jsdelivr.net/npm/redoc@2/bundles/redoc.standalone.js"></script>
</body>
</html>
`))

// SetupDocs registers the OpenAPI document and its viewers
func SetupDocs(router *gin.Engine, cfg config.DocsConfig) {
	if cfg.OpenAPIPath == "" {
		return
	}

	router.GET(cfg.OpenAPIPath, OpenAPIDocument)

	if cfg.SwaggerPath != "" {
		index := cfg.SwaggerPath + "/index.html"
		router.GET(cfg.SwaggerPath, func(c *gin.Context) {
			c.Redirect(http.StatusMovedPermanently, index)
		})
		router.GET(cfg.SwaggerPath+"/*any", ginSwagger.WrapHandler(swaggerFiles.Handler,
			ginSwagger.URL(cfg.OpenAPIPath),
			ginSwagger.DocExpansion("list"),
		))
	}

	if cfg.RedocPath != "" {
		page, err := renderRedoc(docs.SwaggerInfo.Title, cfg.OpenAPIPath)
		if err != nil {
			logrus.WithError(err).Error("Failed to render ReDoc page, viewer disabled")
			return
		}
		router.GET(cfg.RedocPath, func(c *gin.Context) {
			c.Data(http.StatusOK, "text/html; charset=utf-8", page)
		})
	}
}

// OpenAPIDocument serves the generated OpenAPI document
func OpenAPIDocument(c *gin.Context) {
	doc, err := swag.ReadDoc(docs.SwaggerInfo.InstanceName())
	if err != nil {
		_ = c.Error(err)
		return
	}
	c.Data(http.StatusOK, "application/json; charset=utf-8", []byte(doc))
}

func renderRedoc(title, specURL string) ([]byte, error) {
	var buf bytes.Buffer
	err := redocTemplate.Execute(&buf, struct {
		Title   string
		SpecURL string
	}{Title: title, SpecURL: specURL})
	if err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
