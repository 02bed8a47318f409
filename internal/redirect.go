package internal

import (
	"bytes"
	"fmt"
	"html/template"
)

var redirectTemplate = template.Must(template.New("redirect").Parse(`<!DOCTYPE html>
<html lang="en">
<head>
    <title>Merchant post to ECOMM</title>
    <style>body {text-align:center;}</style>
    <script type="text/javascript">
        function redirect() {
            document.getElementById("form").submit();
        }
    </script>
</head>
<body onLoad="redirect()">
    <form action="{{.Action}}" id="form" method="POST">
        <input type="hidden" name="trans_id" value="{{.TransID}}">
        <noscript>
            <p>Please click the submit button below.</p>
            <input type="submit" value="Submit" />
        </noscript>
    </form>
</body>
</html>
`))

// RedirectPayload renders an auto-submitting form that posts transID to clientHandler.
// Both values are escaped for their HTML context; unsafe URLs are replaced by the
// template engine.
func RedirectPayload(clientHandler, transID string) (template.HTML, error) {
	var buf bytes.Buffer
	err := redirectTemplate.Execute(&buf, struct {
		Action  string
		TransID string
	}{
		Action:  clientHandler,
		TransID: transID,
	})
	if err != nil {
		return "", fmt.Errorf("render redirect: %w", err)
	}
	return template.HTML(buf.String()), nil
}
