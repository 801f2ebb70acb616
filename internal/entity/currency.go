package entity

// CurrencyDefinition binds a currency symbol to its EVDS buy and sell series.
type CurrencyDefinition struct {
	Code       string
	BuySeries  string
	SellSeries string
	Name       string
}

// Series returns the series id for the given rate type.
func (c CurrencyDefinition) Series(t RateType) string {
	if t == RateSell {
		return c.SellSeries
	}
	return c.BuySeries
}

// CurrencyInfo is the public listing of a supported currency.
type CurrencyInfo struct {
	Code     string `json:"code"`
	Name     string `json:"name"`
	BuyCode  string `json:"buyCode"`
	SellCode string `json:"sellCode"`
}

// HundredUnitCurrency is quoted per 100 units in the bulletin and returned as is.
const HundredUnitCurrency = "JPY"

var currencyOrder = []string{
	"USD", "EUR", "GBP", "CHF", "JPY", "CAD", "AUD", "SEK", "NOK", "DKK",
	"RUB", "CNY", "SAR", "KWD", "QAR", "IRR", "BGN", "RON", "PKR",
}

var currencyNames = map[string]string{
	"USD": "ABD DOLARI",
	"EUR": "EURO",
	"GBP": "İNGİLİZ STERLİNİ",
	"CHF": "İSVİÇRE FRANGI",
	"JPY": "JAPON YENİ",
	"CAD": "KANADA DOLARI",
	"AUD": "AVUSTRALYA DOLARI",
	"SEK": "İSVEÇ KRONU",
	"NOK": "NORVEÇ KRONU",
	"DKK": "DANİMARKA KRONU",
	"RUB": "RUS RUBLESİ",
	"CNY": "ÇİN YUANI",
	"SAR": "SUUDİ ARABİSTAN RİYALİ",
	"KWD": "KUVEYT DİNARI",
	"QAR": "KATAR RİYALİ",
	"IRR": "İRAN RİYALİ",
	"BGN": "BULGAR LEVASI",
	"RON": "RUMEN LEYİ",
	"PKR": "PAKİSTAN RUPİSİ",
}

var registry = buildRegistry()

func buildRegistry() map[string]CurrencyDefinition {
	reg := make(map[string]CurrencyDefinition, len(currencyOrder))
	for _, code := range currencyOrder {
		reg[code] = CurrencyDefinition{
			Code:       code,
			BuySeries:  "TP.DK." + code + ".A",
			SellSeries: "TP.DK." + code + ".S",
			Name:       currencyNames[code],
		}
	}
	return reg
}

func LookupCurrency(code string) (CurrencyDefinition, bool) {
	def, ok := registry[code]
	return def, ok
}

// CurrencyCodes returns every registered symbol in registry order.
func CurrencyCodes() []string {
	codes := make([]string, len(currencyOrder))
	copy(codes, currencyOrder)
	return codes
}

func SupportedCurrencies() []CurrencyInfo {
	out := make([]CurrencyInfo, 0, len(currencyOrder))
	for _, code := range currencyOrder {
		def := registry[code]
		out = append(out, CurrencyInfo{
			Code:     def.Code,
			Name:     def.Name,
			BuyCode:  def.BuySeries,
			SellCode: def.SellSeries,
		})
	}
	return out
}
