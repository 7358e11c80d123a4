package font

// Advance widths of the printable ASCII range (U+0020..U+007E) in
// thousandths of an em, from the Adobe core font metrics.
var (
	helvetica = [95]float64{
		278, 278, 355, 556, 556, 889, 667, 191, 333, 333, 389, 584, 278, 333, 278, 278,
		556, 556, 556, 556, 556, 556, 556, 556, 556, 556, 278, 278, 584, 584, 584, 556,
		1015, 667, 667, 722, 722, 667, 611, 778, 722, 278, 500, 667, 556, 833, 722, 778,
		667, 778, 722, 667, 611, 722, 667, 944, 667, 667, 611, 278, 278, 278, 469, 556,
		333, 556, 556, 500, 556, 556, 278, 556, 556, 222, 222, 500, 222, 833, 556, 556,
		556, 556, 333, 500, 278, 556, 500, 722, 500, 500, 500, 334, 260, 334, 584,
	}
	helveticaBold = [95]float64{
		278, 333, 474, 556, 556, 889, 722, 238, 333, 333, 389, 584, 278, 333, 278, 278,
		556, 556, 556, 556, 556, 556, 556, 556, 556, 556, 333, 333, 584, 584, 584, 611,
		975, 722, 722, 722, 722, 667, 611, 778, 722, 278, 556, 722, 611, 833, 722, 778,
		667, 778, 722, 667, 611, 722, 667, 944, 667, 667, 611, 333, 278, 333, 584, 556,
		333, 556, 611, 556, 611, 556, 333, 611, 611, 278, 278, 556, 278, 889, 611, 611,
		611, 611, 389, 556, 333, 611, 556, 778, 556, 556, 500, 389, 280, 389, 584,
	}
	timesRoman = [95]float64{
		250, 333, 408, 500, 500, 833, 778, 180, 333, 333, 500, 564, 250, 333, 250, 278,
		500, 500, 500, 500, 500, 500, 500, 500, 500, 500, 278, 278, 564, 564, 564, 444,
		921, 722, 667, 667, 722, 611, 556, 722, 722, 333, 389, 722, 611, 889, 722, 722,
		556, 722, 667, 556, 611, 722, 722, 944, 722, 722, 611, 333, 278, 333, 469, 500,
		333, 444, 500, 444, 500, 444, 333, 500, 500, 278, 278, 500, 278, 778, 500, 500,
		500, 500, 333, 389, 278, 500, 500, 722, 500, 500, 444, 480, 200, 480, 541,
	}
	timesBold = [95]float64{
		250, 333, 555, 500, 500, 1000, 833, 278, 333, 333, 500, 570, 250, 333, 250, 278,
		500, 500, 500, 500, 500, 500, 500, 500, 500, 500, 333, 333, 570, 570, 570, 500,
		930, 722, 667, 722, 722, 667, 611, 778, 778, 389, 500, 778, 667, 944, 722, 778,
		611, 778, 722, 556, 667, 722, 722, 1000, 722, 722, 667, 333, 278, 333, 581, 500,
		333, 500, 556, 444, 556, 444, 333, 500, 556, 278, 333, 556, 278, 833, 556, 500,
		556, 556, 444, 389, 333, 556, 500, 722, 500, 500, 444, 394, 220, 394, 520,
	}
	courier  = uniform(600)
	symbolic = uniform(500)
)

func uniform(w float64) [95]float64 {
	var m [95]float64
	for i := range m {
		m[i] = w
	}
	return m
}

// standard14 maps the Standard 14 font names to their metrics. Italic
// faces share the upright widths.
var standard14 = map[string]*[95]float64{
	"Helvetica":             &helvetica,
	"Helvetica-Oblique":     &helvetica,
	"Helvetica-Bold":        &helveticaBold,
	"Helvetica-BoldOblique": &helveticaBold,
	"Times-Roman":           &timesRoman,
	"Times-Italic":          &timesRoman,
	"Times-Bold":            &timesBold,
	"Times-BoldItalic":      &timesBold,
	"Courier":               &courier,
	"Courier-Oblique":       &courier,
	"Courier-Bold":          &courier,
	"Courier-BoldOblique":   &courier,
	"Symbol":                &symbolic,
	"ZapfDingbats":          &symbolic,
}

// aliases are names producers use for the Standard 14 faces
var aliases = map[string]string{
	"Arial":                  "Helvetica",
	"Arial,Bold":             "Helvetica-Bold",
	"Arial,Italic":           "Helvetica-Oblique",
	"Arial,BoldItalic":       "Helvetica-BoldOblique",
	"ArialMT":                "Helvetica",
	"Arial-BoldMT":           "Helvetica-Bold",
	"TimesNewRoman":          "Times-Roman",
	"TimesNewRoman,Bold":     "Times-Bold",
	"TimesNewRomanPSMT":      "Times-Roman",
	"TimesNewRomanPS-BoldMT": "Times-Bold",
	"CourierNew":             "Courier",
	"CourierNewPSMT":         "Courier",
}

// standardMetrics returns the metrics for baseFont. Fonts outside the
// Standard 14 get the closest match by name, Helvetica by default.
func standardMetrics(baseFont string) *[95]float64 {
	name := baseFont
	if isSubset(name) {
		name = name[7:]
	}
	if alias, ok := aliases[name]; ok {
		name = alias
	}
	if m, ok := standard14[name]; ok {
		return m
	}

	f := &Font{BaseFont: name}
	switch {
	case f.nameHas("courier", "mono"):
		return &courier
	case f.nameHas("times", "roman") && f.nameHas("bold"):
		return &timesBold
	case f.nameHas("times", "roman"):
		return &timesRoman
	case f.nameHas("bold", "black", "heavy"):
		return &helveticaBold
	}
	return &helvetica
}
