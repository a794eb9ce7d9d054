package httpapi

import (
	"bytes"
	"html/template"

	"gatrack/pkg/types"
)

var pageTemplate = template.Must(template.New("page").Parse(`<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<title>{{.Path}}</title>
<meta name="gatrack-ui" content="{{.UIID}}">
</head>
<body>
<script>
{{.Script}}
</script>
</body>
</html>
`))

// renderPage wraps the calls of a turn in a minimal HTML document.
func renderPage(path string, resp types.TurnResponse) ([]byte, error) {
	script, err := types.RenderScript(resp.Calls)
	if err != nil {
		return nil, err
	}
	var buf bytes.Buffer
	err = pageTemplate.Execute(&buf, struct {
		Path   string
		UIID   string
		Script template.JS
	}{Path: path, UIID: resp.UIID, Script: template.JS(script)})
	if err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
