package markdown

import (
	gmast "github.com/yuin/goldmark/ast"
)

// AlertKind identifies one of the five GitHub alert types.
type AlertKind string

const (
	AlertNote      AlertKind = "NOTE"
	AlertTip       AlertKind = "TIP"
	AlertImportant AlertKind = "IMPORTANT"
	AlertWarning   AlertKind = "WARNING"
	AlertCaution   AlertKind = "CAUTION"
)

// alertMarkers maps the exact first-line marker to its kind. Matching is
// case-sensitive; anything else stays a generic blockquote.
var alertMarkers = map[string]AlertKind{
	"[!NOTE]":      AlertNote,
	"[!TIP]":       AlertTip,
	"[!IMPORTANT]": AlertImportant,
	"[!WARNING]":   AlertWarning,
	"[!CAUTION]":   AlertCaution,
}

// KindAlert is the node kind of the Alert block.
var KindAlert = gmast.NewNodeKind("Alert")

// Alert is a block node replacing a blockquote whose first line carried an
// alert marker. Its children are the blockquote's children with the marker
// line stripped.
type Alert struct {
	gmast.BaseBlock
	AlertKind AlertKind
}

// Kind implements ast.Node.
func (n *Alert) Kind() gmast.NodeKind { return KindAlert }

// Dump implements ast.Node.
func (n *Alert) Dump(source []byte, level int) {
	gmast.DumpHelper(n, source, level, map[string]string{
		"AlertKind": string(n.AlertKind),
	}, nil)
}

// RewriteAlerts replaces blockquotes carrying an alert marker with Alert
// nodes. Blockquotes without an exact marker are left untouched.
func RewriteAlerts(root gmast.Node, source []byte) {
	var quotes []*gmast.Blockquote
	_ = gmast.Walk(root, func(n gmast.Node, entering bool) (gmast.WalkStatus, error) {
		if !entering {
			return gmast.WalkContinue, nil
		}
		if bq, ok := n.(*gmast.Blockquote); ok {
			quotes = append(quotes, bq)
		}
		return gmast.WalkContinue, nil
	})

	for _, bq := range quotes {
		rewriteAlert(bq, source)
	}
}

func rewriteAlert(bq *gmast.Blockquote, source []byte) {
	parent := bq.Parent()
	if parent == nil {
		return
	}

	para, ok := bq.FirstChild().(*gmast.Paragraph)
	if !ok {
		return
	}

	kind, markerNodes, ok := alertMarker(para, source)
	if !ok {
		return
	}

	for _, n := range markerNodes {
		para.RemoveChild(para, n)
	}

	alert := &Alert{AlertKind: kind}
	for child := bq.FirstChild(); child != nil; {
		next := child.NextSibling()
		if child == para && para.ChildCount() == 0 {
			// The first paragraph held only the marker.
			child = next
			continue
		}
		alert.AppendChild(alert, child)
		child = next
	}

	parent.ReplaceChild(parent, bq, alert)
}

// alertMarker inspects the paragraph's first line. It matches only when the
// line consists of plain text nodes spelling an exact marker; the returned
// nodes are the ones to strip (the marker text including its trailing line
// break).
func alertMarker(para *gmast.Paragraph, source []byte) (AlertKind, []gmast.Node, bool) {
	var line []byte
	var lineNodes []gmast.Node

	for child := para.FirstChild(); child != nil; child = child.NextSibling() {
		t, ok := child.(*gmast.Text)
		if !ok {
			// Markup inside the first line disqualifies it as a marker.
			return "", nil, false
		}
		line = append(line, t.Segment.Value(source)...)
		lineNodes = append(lineNodes, child)
		if t.SoftLineBreak() || t.HardLineBreak() {
			break
		}
	}

	kind, ok := alertMarkers[string(line)]
	if !ok {
		return "", nil, false
	}
	return kind, lineNodes, true
}
