package calc

// FunctionDoc is the help shown while a function call is being typed.
type FunctionDoc struct {
	Description string `json:"description"`
	Usage       string `json:"usage"`
}

type translated map[string]string

type functionDoc struct {
	description translated
	usage       translated
}

func sameUsage(usage string) translated {
	return translated{"en": usage}
}

var documentation = map[string]functionDoc{
	"log": {
		description: translated{"fi": "Logaritmi kantaluvulla", "en": "Logarithm to Arbitrary base", "sv": "Logaritm med bas"},
		usage:       translated{"fi": "log(kantaluku; x)", "en": "log(base; x)", "sv": "log(bas; x)"},
	},
	"lg": {
		description: translated{"fi": "Kymmenkantainen logaritmi", "en": "Common Logarithm", "sv": "Briggsk logaritm"},
		usage:       sameUsage("lg(x)"),
	},
	"sin": {
		description: translated{"fi": "Sini", "en": "Sine", "sv": "Sinus"},
		usage:       sameUsage("sin(x)"),
	},
	"cos": {
		description: translated{"fi": "Kosini", "en": "Cosine", "sv": "Cosinus"},
		usage:       sameUsage("cos(x)"),
	},
	"tan": {
		description: translated{"fi": "Tangentti", "en": "Tangent", "sv": "Tangens"},
		usage:       sameUsage("tan(x)"),
	},
	"arcsin": {
		description: translated{
			"fi": "Arkussini (käänteisfunktio sinille)",
			"en": "Arc sine (inverse sine function)",
			"sv": "Arcussinus (invers sinusfunktion)",
		},
		usage: sameUsage("arcsin(x)"),
	},
	"arccos": {
		description: translated{
			"fi": "Arkuskosini (käänteisfunktio kosinille)",
			"en": "Arccosine (inverse cosine function)",
			"sv": "Arcuscosinus (invers cosinusfunktion)",
		},
		usage: sameUsage("arccos(x)"),
	},
	"arctan": {
		description: translated{
			"fi": "Arkustangentti (käänteisfunktio tangentille)",
			"en": "Arctangent (inverse tangent function)",
			"sv": "Arcustangens (invers tangensfunktion)",
		},
		usage: sameUsage("arctan(x)"),
	},
	"sqrt": {
		description: translated{"fi": "Neliöjuuri", "en": "Square root", "sv": "Kvadratrot"},
		usage:       sameUsage("sqrt(x)"),
	},
	"ln": {
		description: translated{
			"fi": "Luonnollinen logaritmi (kantaluku e)",
			"en": "Natural logarithm (base e)",
			"sv": "Naturlig logaritm (bas e)",
		},
		usage: sameUsage("ln(x)"),
	},
	"nthroot": {
		description: translated{"fi": "Juurifunktio", "en": "n:th root", "sv": "n:te rot"},
		usage:       sameUsage("nthroot(n; x)"),
	},
}

func (t translated) in(lang string) string {
	if s, ok := t[lang]; ok {
		return s
	}
	return t["en"]
}

// Documentation returns help for a function in the given language, falling back to
// English.
func Documentation(name, lang string) (FunctionDoc, bool) {
	doc, ok := documentation[name]
	if !ok {
		return FunctionDoc{}, false
	}
	return FunctionDoc{
		Description: doc.description.in(lang),
		Usage:       doc.usage.in(lang),
	}, true
}

// OpenFunction returns the name of the function whose argument list was just opened,
// e.g. "log" for "2 + log(". It returns "" when the input does not end that way.
func OpenFunction(expression string) string {
	n := len(expression)
	if n == 0 || expression[n-1] != '(' {
		return ""
	}
	start := n - 1
	for start > 0 && expression[start-1] >= 'a' && expression[start-1] <= 'z' {
		start--
	}
	return expression[start : n-1]
}
