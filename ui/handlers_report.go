package ui

import (
	"bytes"
	"fmt"
	"html/template"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gomarkdown/markdown"
	"github.com/gomarkdown/markdown/html"
	"github.com/gomarkdown/markdown/parser"

	apperrors "pcon/internal/errors"
	"pcon/models"
)

// handleManifestExport streams the manifest as an xlsx workbook
func (s *Server) handleManifestExport(c *gin.Context) {
	manifestNo := c.Param("manifestNo")
	detail, err := s.service.Detail(c.Request.Context(), manifestNo)
	if err != nil {
		s.respondError(c, err)
		return
	}

	var buf bytes.Buffer
	if err := s.exporter.Write(detail, &buf); err != nil {
		s.respondError(c, apperrors.Wrap(err, "manifest export failed"))
		return
	}
	filename := fmt.Sprintf("manifest_%s.xlsx", manifestNo)
	c.Header("Content-Disposition", `attachment; filename="`+filename+`"`)
	c.Data(http.StatusOK, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", buf.Bytes())
}

var reportTemplate = template.Must(template.New("report").Parse(`<!DOCTYPE html>
<html>
<head><title>Manifest {{.Manifest.ManifestNo}}</title></head>
<body>
<h1>Manifest {{.Manifest.ManifestNo}}</h1>
<p>Trailer {{.Manifest.TrailerNumber}} &middot; Seal {{.Manifest.Seal}} &middot; Carrier {{.Manifest.OBCarrierCode}}</p>
{{range .Stops}}
<h2>Stop {{.Stop.StopOrder}} &middot; {{.Stop.CodeDestination}} ({{.Stop.DropNo}})</h2>
{{range .Shipments}}
<h3>Order {{.OrderID}} &middot; {{.VendorCode}}</h3>
<p>BOL {{.BOLNo}} &middot; PRO {{.PRONo}} &middot; PO {{.PONumber}} &middot; {{.Skids}} skids / {{.Boxes}} boxes</p>
{{.NotesHTML}}
{{end}}
{{end}}
</body>
</html>
`))

type reportShipment struct {
	models.Shipment
	NotesHTML template.HTML
}

type reportStop struct {
	Stop      models.Stop
	Shipments []reportShipment
}

type reportData struct {
	Manifest models.Manifest
	Stops    []reportStop
}

// renderMarkdown converts operator-entered notes to HTML for the report
func renderMarkdown(src string) template.HTML {
	if src == "" {
		return ""
	}
	p := parser.NewWithExtensions(parser.CommonExtensions)
	renderer := html.NewRenderer(html.RendererOptions{Flags: html.CommonFlags | html.SkipHTML})
	return template.HTML(markdown.ToHTML([]byte(src), p, renderer))
}

// handleManifestReport renders a printable HTML report with shipment notes
// converted from markdown
func (s *Server) handleManifestReport(c *gin.Context) {
	detail, err := s.service.Detail(c.Request.Context(), c.Param("manifestNo"))
	if err != nil {
		s.respondError(c, err)
		return
	}

	data := reportData{Manifest: detail.Manifest}
	for _, stop := range detail.Stops {
		rs := reportStop{Stop: stop.Stop}
		for _, sh := range stop.Shipments {
			rs.Shipments = append(rs.Shipments, reportShipment{
				Shipment:  sh,
				NotesHTML: renderMarkdown(sh.Notes),
			})
		}
		data.Stops = append(data.Stops, rs)
	}

	var buf bytes.Buffer
	if err := reportTemplate.Execute(&buf, data); err != nil {
		s.respondError(c, apperrors.Wrap(err, "report rendering failed"))
		return
	}
	c.Data(http.StatusOK, "text/html; charset=utf-8", buf.Bytes())
}
