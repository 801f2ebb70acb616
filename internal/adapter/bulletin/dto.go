package bulletin

import "encoding/xml"

// RootElement is the expected document root of a daily bulletin.
const RootElement = "Tarih_Date"

// TarihDate is the daily bulletin. A single Currency child decodes to a
// one-element slice, the same as a repeated one.
type TarihDate struct {
	XMLName    xml.Name
	Tarih      string     `xml:"Tarih,attr"`
	Date       string     `xml:"Date,attr"`
	BultenNo   string     `xml:"Bulten_No,attr"`
	Currencies []Currency `xml:"Currency"`
}

type Currency struct {
	Kod             string `xml:"Kod,attr"`
	CurrencyCode    string `xml:"CurrencyCode,attr"`
	CrossOrder      string `xml:"CrossOrder,attr"`
	Unit            string `xml:"Unit"`
	Isim            string `xml:"Isim"`
	CurrencyName    string `xml:"CurrencyName"`
	ForexBuying     string `xml:"ForexBuying"`
	ForexSelling    string `xml:"ForexSelling"`
	BanknoteBuying  string `xml:"BanknoteBuying"`
	BanknoteSelling string `xml:"BanknoteSelling"`
}

// Code prefers the Kod attribute and falls back to CurrencyCode.
func (c Currency) Code() string {
	if c.Kod != "" {
		return c.Kod
	}
	return c.CurrencyCode
}
