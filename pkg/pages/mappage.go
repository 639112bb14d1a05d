package pages

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/a11ylab/a11ydemo/pkg/shell"
	. "github.com/a11ylab/a11ydemo/pkg/vdom"
)

type mapPage struct {
	env        *shell.Env
	catalog    *Catalog
	colorBlind bool
	selected   *Marker
	opener     string
}

func newMapPage(env *shell.Env, catalog *Catalog) *mapPage {
	return &mapPage{env: env, catalog: catalog}
}

func (p *mapPage) toggle() {
	p.colorBlind = !p.colorBlind
}

// selectMarker shows the details panel for m. opener is the marker
// element that receives focus again when the panel closes.
func (p *mapPage) selectMarker(m Marker, opener string) {
	p.selected = &m
	p.opener = opener
	p.env.Announce(fmt.Sprintf("Error details: %s, %s priority", m.Message, m.Severity))
}

func (p *mapPage) closeDetails() {
	p.selected = nil
	if p.opener != "" {
		p.env.Document().Focus(p.opener)
	}
	p.opener = ""
}

func (p *mapPage) Render() *VNode {
	toggleLabel := "Color Blind Simulation Mode"
	instruction := "👁️ Normal Vision: All error markers are clearly visible with red colors"
	if p.colorBlind {
		toggleLabel = "Normal Vision Mode"
		instruction = "🔍 Color Blind Mode: Notice how red error markers become nearly invisible!"
	}

	return Div(ID("map-page"), Class("container"),
		Section(AriaLabelledBy("demo-heading"),
			H1("Map Color Accessibility Demo"),
			H2(ID("demo-heading"), "Color-Only Map Markers vs. Accessible Patterns"),
			Div(Class("demo-controls"),
				Button(ID("color-blind-toggle"), Type("button"),
					Class("toggle-button"), ClassIf(p.colorBlind, "active"),
					AriaPressed(p.colorBlind),
					OnClick(p.toggle),
					toggleLabel,
				),
				P(Class("demo-instruction"), instruction),
			),
			Div(Class("color-blind-simulator"), ClassIf(p.colorBlind, "active"),
				Div(Class("demo-section"),
					H3("❌ Problem: Color-Only Map Indicators"),
					P("This map uses only red/orange colors to indicate system errors. Color-blind users may not see these critical alerts!"),
					Div(ID("problem-map"), Class("map-container"),
						Div(Class("map-background"),
							Div(Class("map-title"), "System Status Map"),
							Div(Class("map-legend"),
								colorLegend(SeverityHigh, "High Priority Errors"),
								colorLegend(SeverityMedium, "Medium Priority"),
								colorLegend(SeverityLow, "Low Priority"),
							),
							p.problemMarkers(),
						),
					),
					p.renderDetails(),
				),
				Div(Class("demo-section"),
					H3("✅ Solution: Accessible Map Patterns"),
					P("This map uses multiple visual indicators: colors, shapes, patterns, and text labels for comprehensive accessibility."),
					Div(ID("accessible-map"), Class("map-container"),
						Div(Class("map-background"),
							Div(Class("map-title"), "Accessible System Status Map"),
							Div(Class("map-legend accessible-legend"), p.shapeLegend()),
							p.accessibleMarkers(),
						),
					),
				),
			),
			Aside(Role("complementary"), AriaLabelledBy("tips-heading"),
				H2(ID("tips-heading"), "Map Accessibility Tips"),
				Ul(
					Li(Strong("Use multiple visual cues"), " - Colors, shapes, patterns, and text"),
					Li(Strong("Provide text alternatives"), " - Screen reader accessible labels"),
					Li(Strong("Include legends"), " - Explain all symbols and colors"),
					Li(Strong("Test with color-blind simulation"), " - Ensure all information remains accessible"),
					Li(Strong("Consider tactile alternatives"), " - For physical maps or print materials"),
					Li(Strong("Use consistent patterns"), " - Same shape always means same thing"),
				),
			),
		),
	)
}

func colorLegend(s Severity, text string) *VNode {
	return Div(Class("legend-item"),
		Span(Class("legend-color", string(s))),
		Span(text),
	)
}

func (p *mapPage) shapeLegend() []*VNode {
	var items []*VNode
	for _, s := range []Severity{SeverityHigh, SeverityMedium, SeverityLow} {
		style := p.catalog.Style(s)
		items = append(items, Div(Class("legend-item"),
			Span(Class("legend-shape", string(s)), AriaHidden(true), style.Symbol),
			Span(Class("legend-text"), style.Legend),
		))
	}
	return items
}

func (p *mapPage) problemMarkers() []*VNode {
	var nodes []*VNode
	for _, m := range p.catalog.Markers {
		id := "marker-" + strconv.Itoa(m.ID)
		nodes = append(nodes, Div(ID(id), Class("map-marker"),
			StyleAttr(p.markerStyle(m)),
			Role("button"), TabIndex(0),
			AriaLabel("Error marker: "+m.Message),
			OnClick(func() { p.selectMarker(m, id) }),
			p.catalog.Style(m.Severity).Icon,
		))
	}
	return nodes
}

func (p *mapPage) accessibleMarkers() []*VNode {
	var nodes []*VNode
	for _, m := range p.catalog.Markers {
		id := "accessible-marker-" + strconv.Itoa(m.ID)
		style := p.catalog.Style(m.Severity)
		nodes = append(nodes, Div(ID(id), Class("accessible-marker", "shape-"+style.Shape),
			StyleAttr(accessibleMarkerStyle(m, style)),
			Role("button"), TabIndex(0),
			AriaLabel(fmt.Sprintf("%s priority error: %s", m.Severity, m.Message)),
			OnClick(func() { p.selectMarker(m, id) }),
			Div(Class("marker-content"),
				Div(Class("marker-icon"), style.Icon),
				Div(Class("marker-label"), strings.ToUpper(string(m.Severity))),
			),
		))
	}
	return nodes
}

// markerStyle positions a colour-only marker. In simulation mode every
// severity collapses to the same grey.
func (p *mapPage) markerStyle(m Marker) string {
	base := fmt.Sprintf("left: %d%%; top: %d%%", m.X, m.Y)
	if p.colorBlind {
		return base + "; background-color: #999; border: 2px solid #666; color: #666"
	}
	return base + fmt.Sprintf("; background-color: %s; border: 2px solid #fff; color: #fff", p.catalog.Style(m.Severity).Color)
}

func accessibleMarkerStyle(m Marker, style SeverityStyle) string {
	ring, radius := "0 0 0 2px #000", "4px"
	if m.Severity == SeverityHigh {
		ring, radius = "0 0 0 3px #000", "50%"
	}
	return fmt.Sprintf("left: %d%%; top: %d%%; background-color: %s; border: 2px solid #fff; color: #fff; box-shadow: %s; border-radius: %s",
		m.X, m.Y, style.Color, ring, radius)
}

func (p *mapPage) renderDetails() *VNode {
	m := p.selected
	if m == nil {
		return nil
	}
	return Div(ID("marker-details"), Class("marker-details"), Role("dialog"), AriaLabelledBy("marker-title"),
		H4(ID("marker-title"), "Error Details"),
		P(Strong("Message:"), " ", m.Message),
		P(Strong("Severity:"), " ", string(m.Severity)),
		P(Strong("Location:"), " ", "Server "+strconv.Itoa(m.ID)),
		Button(ID("marker-close"), Type("button"), OnClick(p.closeDetails), "Close"),
	)
}
