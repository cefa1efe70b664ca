// Package taxonomy declares the provider taxonomy: the asset classes, the
// categories valid within each class, and the exchanges the provider accepts
// as query parameters. The provider does not publish this table, so it is
// maintained empirically; adding a new category or exchange is a data edit
// here, not a code change elsewhere.
package taxonomy

// AssetClass is the top-level instrument classification.
type AssetClass string

// Category is a sub-classification scoped within an asset class.
type Category string

// Exchange is a market/listing venue code.
type Exchange string

// All* are query-time wildcards. They are never stored field values.
const (
	AllAssetClasses AssetClass = "All"
	AllCategories   Category   = "All"
	AllExchanges    Exchange   = "All"
)

const (
	Equity         AssetClass = "Equity"
	ETF            AssetClass = "ETF"
	Index          AssetClass = "Index"
	Currency       AssetClass = "Currency"
	Future         AssetClass = "Future"
	MutualFund     AssetClass = "Mutual Fund"
	Cryptocurrency AssetClass = "Cryptocurrency"
)

const (
	NYSE   Exchange = "NYSE"
	NASDAQ Exchange = "NASDAQ"
	AMEX   Exchange = "AMEX"
	LSE    Exchange = "LSE"
	TSE    Exchange = "TSE"
	HKEX   Exchange = "HKEX"
	XETRA  Exchange = "XETRA"
	CCC    Exchange = "CCC"
)

// validPairs lists the categories the provider accepts for each asset class.
// Observed empirically; cells missing here are combinations the provider
// rejects outright.
var validPairs = map[AssetClass][]Category{
	Equity: {
		"Technology", "Financial Services", "Healthcare", "Energy",
		"Industrials", "Consumer Cyclical", "Consumer Defensive",
		"Basic Materials", "Communication Services", "Real Estate",
		"Utilities",
	},
	ETF:            {"Equity", "Bond", "Commodity", "Mixed", "Currency", "Alternative"},
	Index:          {"Broad Market", "Sector", "Volatility"},
	Currency:       {"Major", "Minor", "Exotic"},
	Future:         {"Commodity", "Financial", "Index"},
	MutualFund:     {"Equity", "Bond", "Money Market", "Balanced"},
	Cryptocurrency: {"Coin", "Token"},
}

// assetClassOrder fixes the iteration order so crawl plans are reproducible.
var assetClassOrder = []AssetClass{
	Equity, ETF, Index, Currency, Future, MutualFund, Cryptocurrency,
}

var exchangeOrder = []Exchange{NYSE, NASDAQ, AMEX, LSE, TSE, HKEX, XETRA, CCC}

// Combination is one (asset class, category, exchange) triple used as a
// crawl query key.
type Combination struct {
	AssetClass AssetClass
	Category   Category
	Exchange   Exchange
}

func (c Combination) String() string {
	return string(c.AssetClass) + "/" + string(c.Category) + "/" + string(c.Exchange)
}

// IsAll reports whether the value is the query-time wildcard.
func (a AssetClass) IsAll() bool { return a == AllAssetClasses }

// IsAll reports whether the value is the query-time wildcard.
func (c Category) IsAll() bool { return c == AllCategories }

// IsAll reports whether the value is the query-time wildcard.
func (e Exchange) IsAll() bool { return e == AllExchanges }

// AssetClasses returns the declared asset classes, excluding the wildcard.
func AssetClasses() []AssetClass {
	out := make([]AssetClass, len(assetClassOrder))
	copy(out, assetClassOrder)
	return out
}

// CategoriesFor returns the categories valid within the given asset class,
// excluding the wildcard. Unknown classes yield an empty slice.
func CategoriesFor(a AssetClass) []Category {
	cats := validPairs[a]
	out := make([]Category, len(cats))
	copy(out, cats)
	return out
}

// Exchanges returns the declared exchanges, excluding the wildcard.
func Exchanges() []Exchange {
	out := make([]Exchange, len(exchangeOrder))
	copy(out, exchangeOrder)
	return out
}

// PairValid reports whether the provider accepts the (class, category) pair.
func PairValid(a AssetClass, c Category) bool {
	for _, cat := range validPairs[a] {
		if cat == c {
			return true
		}
	}
	return false
}

// Combinations expands a filter into the concrete combinations it covers.
// Wildcard axes expand to every declared value; a concrete (class, category)
// pair that is not in the table expands to nothing.
func Combinations(a AssetClass, c Category, e Exchange) []Combination {
	classes := []AssetClass{a}
	if a.IsAll() {
		classes = assetClassOrder
	}
	exchanges := []Exchange{e}
	if e.IsAll() {
		exchanges = exchangeOrder
	}

	var out []Combination
	for _, class := range classes {
		cats := []Category{c}
		if c.IsAll() {
			cats = validPairs[class]
		}
		for _, cat := range cats {
			if !PairValid(class, cat) {
				continue
			}
			for _, ex := range exchanges {
				out = append(out, Combination{AssetClass: class, Category: cat, Exchange: ex})
			}
		}
	}
	return out
}
