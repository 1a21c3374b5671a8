// Package labels renders box labels and dispatch documents as HTML files for the
// print queue. It runs as an event subscriber, after the ledgers are already written.
package labels

import (
	"fmt"
	"html/template"
	"os"
	"path/filepath"

	"github.com/KJ21-ENG/natraj-metallic/pkg/domain/entities"
	"github.com/KJ21-ENG/natraj-metallic/pkg/infrastructure/events"
)

var funcs = template.FuncMap{
	"date": func(e entities.Box) string { return e.DateCreated.Format(entities.DateLayout) },
}

var boxTemplate = template.Must(template.New("box").Funcs(funcs).Parse(`<!DOCTYPE html>
<html>
<head><meta charset="utf-8"><title>Box Label - {{.BoxID}}</title></head>
<body>
<div class="label">
  <div><span class="label-text">Box ID:</span> <span class="value">{{.BoxID}}</span></div>
  <div><span class="label-text">Roll ID:</span> <span class="value">{{.RollID}}</span></div>
  <div><span class="label-text">Net Weight:</span> <span class="value">{{.NetWeight.StringFixed 2}} kg</span></div>
  <div><span class="label-text">Bobbins:</span> <span class="value">{{.BobbinCount}}{{if .BobbinType}} ({{.BobbinType}}){{end}}</span></div>
  <div><span class="label-text">Date:</span> <span class="value">{{date .}}</span></div>
</div>
</body>
</html>
`))

var dispatchTemplate = template.Must(template.New("dispatch").Parse(`<!DOCTYPE html>
<html>
<head><meta charset="utf-8"><title>Dispatch - {{.Dispatch.DispatchID}}</title></head>
<body>
<h1>Dispatch Note</h1>
<div><span class="info-label">Dispatch ID:</span> {{.Dispatch.DispatchID}}</div>
<div><span class="info-label">Date:</span> {{.Date}}</div>
<div><span class="info-label">Customer:</span> {{.Dispatch.CustomerName}}</div>
<table>
  <tr><th>Box ID</th><th>Roll ID</th><th>Net Weight</th><th>Bobbins</th></tr>
{{- range .Boxes}}
  <tr><td>{{.BoxID}}</td><td>{{.RollID}}</td><td>{{.NetWeight.StringFixed 2}} kg</td><td>{{.BobbinCount}}</td></tr>
{{- end}}
  <tr><th colspan="2">Total</th><th>{{.Dispatch.TotalWeight.StringFixed 2}} kg</th><th>{{.Dispatch.TotalBobbins}}</th></tr>
</table>
</body>
</html>
`))

// Renderer writes one file per box label and per dispatch note into Dir
type Renderer struct {
	Dir string
}

// NewRenderer creates a renderer writing into dir
func NewRenderer(dir string) *Renderer {
	return &Renderer{Dir: dir}
}

// Types lists the events the renderer subscribes to
func (r *Renderer) Types() []string {
	return []string{events.BoxesReceivedEvent, events.DispatchCreatedEvent}
}

func (r *Renderer) CanHandle(eventType string) bool {
	return eventType == events.BoxesReceivedEvent || eventType == events.DispatchCreatedEvent
}

func (r *Renderer) Handle(event events.Event) error {
	switch data := event.Data().(type) {
	case events.BoxesReceived:
		for _, box := range data.Boxes {
			if err := r.RenderBox(box); err != nil {
				return err
			}
		}
		return nil
	case events.DispatchCreated:
		return r.RenderDispatch(data.Dispatch, data.Boxes)
	default:
		return fmt.Errorf("unexpected payload %T for %s", event.Data(), event.Type())
	}
}

// RenderBox writes box_label_<id>.html
func (r *Renderer) RenderBox(box entities.Box) error {
	return r.render(fmt.Sprintf("box_label_%s.html", box.BoxID), boxTemplate, box)
}

// RenderDispatch writes dispatch_<id>.html
func (r *Renderer) RenderDispatch(dispatch entities.Dispatch, boxes []entities.Box) error {
	return r.render(fmt.Sprintf("dispatch_%s.html", dispatch.DispatchID), dispatchTemplate, struct {
		Dispatch entities.Dispatch
		Boxes    []entities.Box
		Date     string
	}{dispatch, boxes, dispatch.DispatchDate.Format(entities.DateLayout)})
}

func (r *Renderer) render(name string, tmpl *template.Template, data any) error {
	if err := os.MkdirAll(r.Dir, 0755); err != nil {
		return fmt.Errorf("failed to create label directory: %w", err)
	}
	f, err := os.Create(filepath.Join(r.Dir, name))
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", name, err)
	}
	if err := tmpl.Execute(f, data); err != nil {
		f.Close()
		return fmt.Errorf("failed to render %s: %w", name, err)
	}
	return f.Close()
}
