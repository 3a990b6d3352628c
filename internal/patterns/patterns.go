// Package patterns holds the static domain knowledge used by the extraction
// engine: known Mexican merchants, RFC shape rules, amount and date regexes
// and category keyword tables. Everything here is immutable after init and
// safe to share across concurrent requests.
package patterns

import "regexp"

// Expense category identifiers. The deductibility rules additionally know
// "professional-services" and "personal", which are never suggested by the
// classifier but can arrive from user-edited expenses.
const (
	CategoryTransport     = "transport"
	CategoryFood          = "food"
	CategoryShopping      = "shopping"
	CategoryGroceries     = "groceries"
	CategoryHealth        = "health"
	CategoryEntertainment = "entertainment"
	CategoryApparel       = "apparel"
	CategoryTechnology    = "technology"
	CategoryEducation     = "education"
	CategoryOther         = "other"

	CategoryProfessionalServices = "professional-services"
	CategoryPersonal             = "personal"
)

// Merchant is one entry of the known-merchant table.
type Merchant struct {
	Name       string   // canonical name returned to the caller
	Keywords   []string // lowercase aliases searched in the OCR text
	Category   string
	Confidence float64
}

// KnownMerchants is the curated table of Mexican merchants. Order matters:
// extraction returns the first entry whose keyword appears in the text.
var KnownMerchants = []Merchant{
	// Conveniencia
	{Name: "OXXO", Keywords: []string{"oxxo", "cadena comercial oxxo", "oxxd"}, Category: CategoryFood, Confidence: 0.95},
	{Name: "SEVEN ELEVEN", Keywords: []string{"seven eleven", "7-eleven", "7 eleven"}, Category: CategoryFood, Confidence: 0.95},
	{Name: "EXTRA", Keywords: []string{"tiendas extra", "extra"}, Category: CategoryFood, Confidence: 0.90},
	{Name: "CIRCLE K", Keywords: []string{"circle k"}, Category: CategoryFood, Confidence: 0.95},

	// Supermercados
	{Name: "WALMART", Keywords: []string{"walmart", "wal-mart"}, Category: CategoryGroceries, Confidence: 0.95},
	{Name: "SORIANA", Keywords: []string{"soriana", "organizacion soriana"}, Category: CategoryGroceries, Confidence: 0.95},
	{Name: "CHEDRAUI", Keywords: []string{"chedraui"}, Category: CategoryGroceries, Confidence: 0.95},
	{Name: "BODEGA AURRERA", Keywords: []string{"bodega aurrera", "aurrera"}, Category: CategoryGroceries, Confidence: 0.95},
	{Name: "LA COMER", Keywords: []string{"la comer", "comer"}, Category: CategoryGroceries, Confidence: 0.90},
	{Name: "COSTCO", Keywords: []string{"costco"}, Category: CategoryGroceries, Confidence: 0.95},
	{Name: "SAMS CLUB", Keywords: []string{"sams", "sam's club"}, Category: CategoryGroceries, Confidence: 0.95},
	{Name: "HEB", Keywords: []string{"h-e-b", "heb"}, Category: CategoryGroceries, Confidence: 0.95},

	// Restaurantes / fast food
	{Name: "MCDONALDS", Keywords: []string{"mcdonalds", "mcdonald's"}, Category: CategoryFood, Confidence: 0.95},
	{Name: "BURGER KING", Keywords: []string{"burger king"}, Category: CategoryFood, Confidence: 0.95},
	{Name: "KFC", Keywords: []string{"kentucky fried chicken", "kfc"}, Category: CategoryFood, Confidence: 0.95},
	{Name: "SUBWAY", Keywords: []string{"subway"}, Category: CategoryFood, Confidence: 0.90},
	{Name: "DOMINOS", Keywords: []string{"dominos", "domino's pizza"}, Category: CategoryFood, Confidence: 0.95},
	{Name: "PIZZA HUT", Keywords: []string{"pizza hut"}, Category: CategoryFood, Confidence: 0.95},
	{Name: "LITTLE CAESARS", Keywords: []string{"little caesars"}, Category: CategoryFood, Confidence: 0.95},
	{Name: "STARBUCKS", Keywords: []string{"starbucks"}, Category: CategoryFood, Confidence: 0.95},

	// Gasolineras
	{Name: "PEMEX", Keywords: []string{"pemex", "petroleos mexicanos"}, Category: CategoryTransport, Confidence: 0.95},
	{Name: "BP", Keywords: []string{"british petroleum", "bp "}, Category: CategoryTransport, Confidence: 0.90},
	{Name: "SHELL", Keywords: []string{"shell"}, Category: CategoryTransport, Confidence: 0.90},
	{Name: "CHEVRON", Keywords: []string{"chevron"}, Category: CategoryTransport, Confidence: 0.90},
	{Name: "MOBIL", Keywords: []string{"mobil"}, Category: CategoryTransport, Confidence: 0.90},

	// Farmacias
	{Name: "FARMACIA GUADALAJARA", Keywords: []string{"farmacias guadalajara", "guadalajara"}, Category: CategoryHealth, Confidence: 0.95},
	{Name: "FARMACIA BENAVIDES", Keywords: []string{"benavides", "farmacias benavides"}, Category: CategoryHealth, Confidence: 0.95},
	{Name: "FARMACIA DEL AHORRO", Keywords: []string{"del ahorro", "farmacias del ahorro"}, Category: CategoryHealth, Confidence: 0.95},
	{Name: "SIMILARES", Keywords: []string{"similares", "farmacias similares"}, Category: CategoryHealth, Confidence: 0.90},

	// Departamentales
	{Name: "LIVERPOOL", Keywords: []string{"liverpool"}, Category: CategoryApparel, Confidence: 0.95},
	{Name: "PALACIO DE HIERRO", Keywords: []string{"palacio de hierro", "palacio"}, Category: CategoryApparel, Confidence: 0.95},
	{Name: "SUBURBIA", Keywords: []string{"suburbia"}, Category: CategoryApparel, Confidence: 0.95},
	{Name: "SEARS", Keywords: []string{"sears"}, Category: CategoryApparel, Confidence: 0.90},

	// Cines
	{Name: "CINEPOLIS", Keywords: []string{"cinepolis", "cinépolis"}, Category: CategoryEntertainment, Confidence: 0.95},
	{Name: "CINEMEX", Keywords: []string{"cinemex"}, Category: CategoryEntertainment, Confidence: 0.95},
}

// CategoryRule maps a category to the keywords that suggest it when the
// merchant is unknown. Declaration order is the matching order.
type CategoryRule struct {
	Category string
	Keywords []string
}

// CategoryRules is scanned in order; the first keyword hit wins.
var CategoryRules = []CategoryRule{
	{Category: CategoryTransport, Keywords: []string{"gasolina", "pemex", "uber", "didi", "taxi", "combustible", "diesel"}},
	{Category: CategoryFood, Keywords: []string{"restaurant", "comida", "alimentos", "bebida", "cafe", "pizza", "taco"}},
	{Category: CategoryShopping, Keywords: []string{"super", "abarrotes", "despensa", "mercado", "tienda", "conveniencia"}},
	{Category: CategoryGroceries, Keywords: []string{"walmart", "soriana", "chedraui", "bodega", "costco"}},
	{Category: CategoryHealth, Keywords: []string{"farmacia", "medicina", "consulta", "doctor", "medic"}},
	{Category: CategoryEntertainment, Keywords: []string{"cine", "pelicula", "teatro", "concierto", "juego"}},
	{Category: CategoryApparel, Keywords: []string{"ropa", "calzado", "zapato", "vestido", "pantalon"}},
	{Category: CategoryTechnology, Keywords: []string{"electronico", "computadora", "telefono", "tech"}},
	{Category: CategoryEducation, Keywords: []string{"escuela", "curso", "libro", "universidad", "colegiatura"}},
}

// RFCPatterns locate RFC candidates in free text (applied to uppercased text).
// Variants: hyphenated three-part, plain three-part, and two-part without
// homoclave. Matches are normalized by stripping hyphens before validation.
var RFCPatterns = []*regexp.Regexp{
	regexp.MustCompile(`\b([A-ZÑ&]{3,4})-?(\d{6})-?([A-Z0-9]{3})\b`),
	regexp.MustCompile(`\b([A-ZÑ&]{3,4})(\d{6})([A-Z0-9]{3})\b`),
	regexp.MustCompile(`\b([A-ZÑ&]{3,4})-?(\d{6})\b`),
}

// RFC shape rules. Persona moral (legal entity) is 12 characters, persona
// fisica (individual) is 13. Structural check only, no checksum.
var (
	RFCLegalEntity = regexp.MustCompile(`^[A-ZÑ&]{3}\d{6}[A-Z0-9]{3}$`)
	RFCIndividual  = regexp.MustCompile(`^[A-ZÑ&]{4}\d{6}[A-Z0-9]{3}$`)
)

// AmountPatterns capture monetary candidates: total/importe labels and bare
// currency-symbol amounts, with optional thousands separators and cents.
var AmountPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)total[:\s]*\$?\s*(\d{1,3}(?:,\d{3})*(?:\.\d{2})?)`),
	regexp.MustCompile(`(?i)importe[:\s]*\$?\s*(\d{1,3}(?:,\d{3})*(?:\.\d{2})?)`),
	regexp.MustCompile(`\$\s*(\d{1,3}(?:,\d{3})*(?:\.\d{2})?)`),
}

// DatePattern pairs a regex with the Go layout that parses its matches.
type DatePattern struct {
	Regex  *regexp.Regexp
	Layout string
}

// DatePatterns recognized in receipt text, tried in order.
var DatePatterns = []DatePattern{
	{Regex: regexp.MustCompile(`(\d{2})/(\d{2})/(\d{4})`), Layout: "02/01/2006"},
	{Regex: regexp.MustCompile(`(\d{2})-(\d{2})-(\d{4})`), Layout: "02-01-2006"},
	{Regex: regexp.MustCompile(`(\d{4})-(\d{2})-(\d{2})`), Layout: "2006-01-02"},
}

// CompanySuffix matches a business name followed by a Mexican corporate
// suffix ("S.A.", "S. DE R.L.", "S.A. DE C.V.").
var CompanySuffix = regexp.MustCompile(`([A-ZÁÉÍÓÚÑ][A-ZÁÉÍÓÚÑa-záéíóúñ\s&.,-]{2,50})\s*(?:S\.?\s*A\.?\s*DE\s*C\.?\s*V\.?|S\.?\s*DE\s*R\.?\s*L\.?|S\.?\s*A\.?)`)
