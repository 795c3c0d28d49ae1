package xccdf

import (
	"fmt"
	"strconv"
	"strings"
)

// Header is the XML declaration that starts every serialized document.
const Header = `<?xml version="1.0" encoding="UTF-8"?>`

// Serialize renders b as a single-line XCCDF 1.2 document. Optional content
// is emitted only when set, in schema order. Output is deterministic.
//
// The root requires ID, at least one Status and Version.Value; nested items
// have their own required fields. A missing field yields a
// *PreconditionError naming it.
func Serialize(b *Benchmark) (string, error) {
	if b == nil {
		return "", &PreconditionError{Field: "id"}
	}
	switch {
	case b.ID == "":
		return "", &PreconditionError{Field: "id"}
	case len(b.Status) == 0:
		return "", &PreconditionError{Field: "status"}
	case b.Version.Value == "":
		return "", &PreconditionError{Field: "version.value"}
	}

	w := &writer{}
	w.b.WriteString(Header)
	w.writeBenchmark(b)
	if w.err != nil {
		return "", w.err
	}
	return w.b.String(), nil
}

type attr struct {
	name, value string
}

func boolAttr(name string, v *bool) attr {
	if v == nil {
		return attr{name: name}
	}
	return attr{name: name, value: strconv.FormatBool(*v)}
}

func numAttr(name string, v *float64) attr {
	if v == nil {
		return attr{name: name}
	}
	return attr{name: name, value: formatNum(*v)}
}

func formatNum(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func index(prefix string, i int) string {
	return fmt.Sprintf("%s[%d]", prefix, i)
}

// writer accumulates XML and records the first precondition failure.
type writer struct {
	b   strings.Builder
	err error
}

func (w *writer) need(field, value string) {
	if w.err == nil && value == "" {
		w.err = &PreconditionError{Field: field}
	}
}

func (w *writer) needAny(field string, n int) {
	if w.err == nil && n == 0 {
		w.err = &PreconditionError{Field: field}
	}
}

func (w *writer) attrs(attrs []attr) {
	for _, a := range attrs {
		if a.value == "" {
			continue
		}
		w.b.WriteByte(' ')
		w.b.WriteString(a.name)
		w.b.WriteString(`="`)
		w.b.WriteString(Escape(a.value))
		w.b.WriteByte('"')
	}
}

func (w *writer) open(name string, attrs ...attr) {
	w.b.WriteByte('<')
	w.b.WriteString(name)
	w.attrs(attrs)
	w.b.WriteByte('>')
}

func (w *writer) close(name string) {
	w.b.WriteString("</")
	w.b.WriteString(name)
	w.b.WriteByte('>')
}

func (w *writer) empty(name string, attrs ...attr) {
	w.b.WriteByte('<')
	w.b.WriteString(name)
	w.attrs(attrs)
	w.b.WriteString("/>")
}

func (w *writer) text(name, value string, attrs ...attr) {
	w.open(name, attrs...)
	w.b.WriteString(Escape(value))
	w.close(name)
}

func (w *writer) texts(name string, items []Text) {
	for _, t := range items {
		w.text(name, t.Value, attr{"xml:lang", t.Lang}, boolAttr("override", t.Override))
	}
}

func (w *writer) statuses(prefix string, items []Status) {
	for i, s := range items {
		w.need(index(prefix+"status", i)+".status", s.Status)
		w.text("status", s.Status, attr{"date", s.Date})
	}
}

func (w *writer) version(v Version) {
	w.text("version", v.Value, attr{"time", v.Time}, attr{"update", v.Update})
}

func (w *writer) references(items []Reference) {
	for _, r := range items {
		w.text("reference", r.Value, attr{"href", r.Href}, boolAttr("override", r.Override))
	}
}

// platforms writes CPE references. Only item and profile platforms accept
// the override attribute.
func (w *writer) platforms(prefix string, items []Platform, overrideable bool) {
	for i, p := range items {
		w.need(index(prefix+"platform", i)+".idref", p.IDRef)
		ov := attr{name: "override"}
		if overrideable {
			ov = boolAttr("override", p.Override)
		}
		w.empty("platform", attr{"idref", p.IDRef}, ov)
	}
}

func (w *writer) writeBenchmark(b *Benchmark) {
	w.open("Benchmark",
		attr{"xmlns", Namespace},
		attr{"id", b.ID},
		attr{"Id", b.XMLID},
		boolAttr("resolved", b.Resolved),
		attr{"style", b.Style},
		attr{"style-href", b.StyleHref},
		attr{"xml:lang", b.Lang},
	)

	w.statuses("", b.Status)
	w.texts("title", b.Title)
	w.texts("description", b.Description)
	for _, n := range b.Notice {
		w.text("notice", n.Value, attr{"id", n.ID}, attr{"xml:lang", n.Lang})
	}
	w.texts("front-matter", b.FrontMatter)
	w.texts("rear-matter", b.RearMatter)
	w.references(b.Reference)
	for i, p := range b.PlainText {
		w.need(index("plainText", i)+".id", p.ID)
		w.text("plain-text", p.Value, attr{"id", p.ID})
	}
	w.platforms("", b.Platform, false)
	w.version(b.Version)
	for i, m := range b.Model {
		w.writeModel(index("model", i), m)
	}
	for i := range b.Profile {
		w.writeProfile(index("Profile", i), &b.Profile[i])
	}
	for i := range b.Value {
		w.writeValue(index("Value", i), &b.Value[i])
	}
	for i := range b.Group {
		w.writeGroup(index("Group", i), &b.Group[i])
	}
	for i := range b.Rule {
		w.writeRule(index("Rule", i), &b.Rule[i])
	}
	for i := range b.TestResult {
		w.writeTestResult(index("TestResult", i), &b.TestResult[i])
	}

	w.close("Benchmark")
}

func (w *writer) writeModel(path string, m Model) {
	w.need(path+".system", m.System)
	if len(m.Param) == 0 {
		w.empty("model", attr{"system", m.System})
		return
	}
	w.open("model", attr{"system", m.System})
	for i, p := range m.Param {
		w.need(index(path+".param", i)+".name", p.Name)
		w.text("param", p.Value, attr{"name", p.Name})
	}
	w.close("model")
}

func itemAttrs(it *Item) []attr {
	return []attr{
		{"id", it.ID},
		{"Id", it.XMLID},
		boolAttr("abstract", it.Abstract),
		{"cluster-id", it.ClusterID},
		{"extends", it.Extends},
		boolAttr("hidden", it.Hidden),
		boolAttr("prohibitChanges", it.ProhibitChanges),
		{"xml:lang", it.Lang},
	}
}

func selectableAttrs(s *Selectable) []attr {
	return append(itemAttrs(&s.Item),
		boolAttr("selected", s.Selected),
		numAttr("weight", s.Weight),
	)
}

func (w *writer) itemContent(path string, it *Item) {
	w.statuses(path+".", it.Status)
	if it.Version != nil {
		w.need(path+".version.value", it.Version.Value)
		w.version(*it.Version)
	}
	w.texts("title", it.Title)
	w.texts("description", it.Description)
	for _, wn := range it.Warning {
		w.text("warning", wn.Value,
			attr{"xml:lang", wn.Lang},
			boolAttr("override", wn.Override),
			attr{"category", wn.Category},
		)
	}
	w.texts("question", it.Question)
	w.references(it.Reference)
}

func (w *writer) selectableContent(path string, s *Selectable) {
	w.itemContent(path, &s.Item)
	w.texts("rationale", s.Rationale)
	w.platforms(path+".", s.Platform, true)
	for i, r := range s.Requires {
		w.need(index(path+".requires", i)+".idref", r.IDRef)
		w.empty("requires", attr{"idref", r.IDRef})
	}
	for i, c := range s.Conflicts {
		w.need(index(path+".conflicts", i)+".idref", c.IDRef)
		w.empty("conflicts", attr{"idref", c.IDRef})
	}
}

func (w *writer) writeGroup(path string, g *Group) {
	w.need(path+".id", g.ID)
	w.open("Group", selectableAttrs(&g.Selectable)...)
	w.selectableContent(path, &g.Selectable)
	for i := range g.Value {
		w.writeValue(index(path+".Value", i), &g.Value[i])
	}
	for i := range g.Group {
		w.writeGroup(index(path+".Group", i), &g.Group[i])
	}
	for i := range g.Rule {
		w.writeRule(index(path+".Rule", i), &g.Rule[i])
	}
	w.close("Group")
}

func (w *writer) writeRule(path string, r *Rule) {
	w.need(path+".id", r.ID)
	attrs := append(selectableAttrs(&r.Selectable),
		attr{"role", r.Role},
		attr{"severity", r.Severity},
		boolAttr("multiple", r.Multiple),
	)
	w.open("Rule", attrs...)
	w.selectableContent(path, &r.Selectable)
	w.idents(path, r.Ident)
	for _, ft := range r.FixText {
		w.text("fixtext", ft.Value,
			attr{"xml:lang", ft.Lang},
			boolAttr("override", ft.Override),
			attr{"fixref", ft.FixRef},
			boolAttr("reboot", ft.Reboot),
			attr{"strategy", ft.Strategy},
			attr{"disruption", ft.Disruption},
			attr{"complexity", ft.Complexity},
		)
	}
	w.fixes(r.Fix)
	w.checks(path, r.Check, r.ComplexCheck)
	w.close("Rule")
}

func (w *writer) idents(path string, items []Ident) {
	for i, id := range items {
		w.need(index(path+".ident", i)+".system", id.System)
		w.text("ident", id.Value, attr{"system", id.System})
	}
}

func (w *writer) fixes(items []Fix) {
	for _, f := range items {
		w.open("fix",
			attr{"id", f.ID},
			boolAttr("reboot", f.Reboot),
			attr{"strategy", f.Strategy},
			attr{"disruption", f.Disruption},
			attr{"complexity", f.Complexity},
			attr{"system", f.System},
			attr{"platform", f.Platform},
		)
		w.b.WriteString(Escape(f.Value))
		for _, in := range f.Instance {
			w.empty("instance", attr{"context", in.Context})
		}
		w.close("fix")
	}
}

// checks writes either the plain checks or the complex check. Setting both
// is a precondition failure.
func (w *writer) checks(path string, checks []Check, cc *ComplexCheck) {
	if len(checks) > 0 && cc != nil && w.err == nil {
		w.err = &PreconditionError{Field: path + ".complexCheck", Err: ErrExclusiveField}
	}
	if len(checks) > 0 {
		for i := range checks {
			w.writeCheck(index(path+".check", i), &checks[i])
		}
		return
	}
	if cc != nil {
		w.writeComplexCheck(path+".complexCheck", cc)
	}
}

func (w *writer) writeCheck(path string, c *Check) {
	w.need(path+".system", c.System)
	attrs := []attr{
		{"system", c.System},
		boolAttr("negate", c.Negate),
		{"id", c.ID},
		{"selector", c.Selector},
		boolAttr("multi-check", c.MultiCheck),
	}
	if len(c.CheckImport)+len(c.CheckExport)+len(c.CheckContentRef) == 0 {
		w.empty("check", attrs...)
		return
	}
	w.open("check", attrs...)
	for i, ci := range c.CheckImport {
		w.need(index(path+".checkImport", i)+".importName", ci.ImportName)
		w.text("check-import", ci.Value, attr{"import-name", ci.ImportName}, attr{"import-xpath", ci.ImportXPath})
	}
	for i, ce := range c.CheckExport {
		p := index(path+".checkExport", i)
		w.need(p+".valueId", ce.ValueID)
		w.need(p+".exportName", ce.ExportName)
		w.empty("check-export", attr{"value-id", ce.ValueID}, attr{"export-name", ce.ExportName})
	}
	for i, cr := range c.CheckContentRef {
		w.need(index(path+".checkContentRef", i)+".href", cr.Href)
		w.empty("check-content-ref", attr{"href", cr.Href}, attr{"name", cr.Name})
	}
	w.close("check")
}

func (w *writer) writeComplexCheck(path string, cc *ComplexCheck) {
	w.need(path+".operator", cc.Operator)
	w.open("complex-check", attr{"operator", cc.Operator}, boolAttr("negate", cc.Negate))
	for i := range cc.Check {
		w.writeCheck(index(path+".check", i), &cc.Check[i])
	}
	for i := range cc.ComplexCheck {
		w.writeComplexCheck(index(path+".complexCheck", i), &cc.ComplexCheck[i])
	}
	w.close("complex-check")
}

func (w *writer) writeValue(path string, v *Value) {
	w.need(path+".id", v.ID)
	w.needAny(path+".value", len(v.Value))
	attrs := append(itemAttrs(&v.Item),
		attr{"type", v.Type},
		attr{"operator", v.Operator},
		boolAttr("interactive", v.Interactive),
		attr{"interfaceHint", v.InterfaceHint},
	)
	w.open("Value", attrs...)
	w.itemContent(path, &v.Item)
	for _, s := range v.Value {
		w.text("value", s.Value, attr{"selector", s.Selector})
	}
	for _, s := range v.Default {
		w.text("default", s.Value, attr{"selector", s.Selector})
	}
	for _, s := range v.Match {
		w.text("match", s.Value, attr{"selector", s.Selector})
	}
	for _, n := range v.LowerBound {
		w.text("lower-bound", formatNum(n.Value), attr{"selector", n.Selector})
	}
	for _, n := range v.UpperBound {
		w.text("upper-bound", formatNum(n.Value), attr{"selector", n.Selector})
	}
	for _, c := range v.Choices {
		w.open("choices", boolAttr("mustMatch", c.MustMatch), attr{"selector", c.Selector})
		for _, ch := range c.Choice {
			w.text("choice", ch)
		}
		w.close("choices")
	}
	for i, s := range v.Source {
		w.need(index(path+".source", i)+".uri", s.URI)
		w.empty("source", attr{"uri", s.URI})
	}
	w.close("Value")
}

func (w *writer) writeProfile(path string, p *Profile) {
	w.need(path+".id", p.ID)
	w.needAny(path+".title", len(p.Title))
	w.open("Profile",
		attr{"id", p.ID},
		attr{"Id", p.XMLID},
		boolAttr("prohibitChanges", p.ProhibitChanges),
		boolAttr("abstract", p.Abstract),
		attr{"note-tag", p.NoteTag},
		attr{"extends", p.Extends},
		attr{"xml:lang", p.Lang},
	)
	w.statuses(path+".", p.Status)
	if p.Version != nil {
		w.need(path+".version.value", p.Version.Value)
		w.version(*p.Version)
	}
	w.texts("title", p.Title)
	w.texts("description", p.Description)
	w.references(p.Reference)
	w.platforms(path+".", p.Platform, true)
	for i, s := range p.Select {
		w.need(index(path+".select", i)+".idref", s.IDRef)
		w.open("select", attr{"idref", s.IDRef}, attr{"selected", strconv.FormatBool(s.Selected)})
		w.texts("remark", s.Remark)
		w.close("select")
	}
	w.setValues(path, p.SetValue)
	for i, rv := range p.RefineValue {
		w.need(index(path+".refineValue", i)+".idref", rv.IDRef)
		w.open("refine-value", attr{"idref", rv.IDRef}, attr{"selector", rv.Selector}, attr{"operator", rv.Operator})
		w.texts("remark", rv.Remark)
		w.close("refine-value")
	}
	for i, rr := range p.RefineRule {
		w.need(index(path+".refineRule", i)+".idref", rr.IDRef)
		w.open("refine-rule",
			attr{"idref", rr.IDRef},
			numAttr("weight", rr.Weight),
			attr{"selector", rr.Selector},
			attr{"severity", rr.Severity},
			attr{"role", rr.Role},
		)
		w.texts("remark", rr.Remark)
		w.close("refine-rule")
	}
	w.close("Profile")
}

func (w *writer) setValues(path string, items []SetValue) {
	for i, sv := range items {
		w.need(index(path+".setValue", i)+".idref", sv.IDRef)
		w.text("set-value", sv.Value, attr{"idref", sv.IDRef})
	}
}

func (w *writer) writeTestResult(path string, tr *TestResult) {
	w.need(path+".id", tr.ID)
	w.need(path+".endTime", tr.EndTime)
	w.needAny(path+".target", len(tr.Target))
	w.needAny(path+".score", len(tr.Score))
	w.open("TestResult",
		attr{"id", tr.ID},
		attr{"Id", tr.XMLID},
		attr{"start-time", tr.StartTime},
		attr{"end-time", tr.EndTime},
		attr{"test-system", tr.TestSystem},
		attr{"version", tr.Version},
	)
	if tr.Benchmark != nil {
		w.need(path+".benchmark.href", tr.Benchmark.Href)
		w.empty("benchmark", attr{"href", tr.Benchmark.Href}, attr{"id", tr.Benchmark.ID})
	}
	w.texts("title", tr.Title)
	w.texts("remark", tr.Remark)
	for _, o := range tr.Organization {
		w.text("organization", o)
	}
	if tr.Identity != nil {
		w.text("identity", tr.Identity.Value,
			attr{"authenticated", strconv.FormatBool(tr.Identity.Authenticated)},
			attr{"privileged", strconv.FormatBool(tr.Identity.Privileged)},
		)
	}
	if tr.Profile != nil {
		w.need(path+".profile.idref", tr.Profile.IDRef)
		w.empty("profile", attr{"idref", tr.Profile.IDRef})
	}
	for _, t := range tr.Target {
		w.text("target", t)
	}
	for _, a := range tr.TargetAddress {
		w.text("target-address", a)
	}
	if tr.TargetFacts != nil {
		w.open("target-facts")
		for i, f := range tr.TargetFacts.Fact {
			w.need(index(path+".targetFacts.fact", i)+".name", f.Name)
			w.text("fact", f.Value, attr{"name", f.Name}, attr{"type", f.Type})
		}
		w.close("target-facts")
	}
	w.platforms(path+".", tr.Platform, false)
	w.setValues(path, tr.SetValue)
	for i := range tr.RuleResult {
		w.writeRuleResult(index(path+".ruleResult", i), &tr.RuleResult[i])
	}
	for _, s := range tr.Score {
		w.text("score", formatNum(s.Value), attr{"system", s.System}, numAttr("maximum", s.Maximum))
	}
	w.close("TestResult")
}

func (w *writer) writeRuleResult(path string, rr *RuleResult) {
	w.need(path+".idref", rr.IDRef)
	w.need(path+".result", rr.Result)
	w.open("rule-result",
		attr{"idref", rr.IDRef},
		attr{"role", rr.Role},
		attr{"severity", rr.Severity},
		attr{"time", rr.Time},
		attr{"version", rr.Version},
		numAttr("weight", rr.Weight),
	)
	w.text("result", rr.Result)
	for i, o := range rr.Override {
		p := index(path+".override", i)
		w.need(p+".time", o.Time)
		w.need(p+".authority", o.Authority)
		w.need(p+".oldResult", o.OldResult)
		w.need(p+".newResult", o.NewResult)
		w.open("override", attr{"time", o.Time}, attr{"authority", o.Authority})
		w.text("old-result", o.OldResult)
		w.text("new-result", o.NewResult)
		w.text("remark", o.Remark.Value, attr{"xml:lang", o.Remark.Lang}, boolAttr("override", o.Remark.Override))
		w.close("override")
	}
	w.idents(path, rr.Ident)
	for i, m := range rr.Message {
		w.need(index(path+".message", i)+".severity", m.Severity)
		w.text("message", m.Value, attr{"severity", m.Severity})
	}
	for _, in := range rr.Instance {
		w.text("instance", in.Value, attr{"context", in.Context}, attr{"parentContext", in.ParentContext})
	}
	w.fixes(rr.Fix)
	w.checks(path, rr.Check, rr.ComplexCheck)
	w.close("rule-result")
}
