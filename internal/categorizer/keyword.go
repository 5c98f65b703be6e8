package categorizer

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/spendwise/backend/internal/category"
	"gopkg.in/yaml.v3"
)

// Keywords are the substrings that select a category.
type Keywords struct {
	Category category.Category `yaml:"name"`
	Keywords []string          `yaml:"keywords"`
}

// Table is an ordered keyword table. When several entries match, the
// earliest one wins.
type Table []Keywords

// DefaultTable is used when no keyword file is configured.
//
// Income does not list "credited" since most debit notifications mention
// a credit card or a credited payee.
var DefaultTable = Table{
	{category.Food, []string{"swiggy", "zomato", "dominos", "mcdonald", "kfc", "pizza", "restaurant", "cafe", "starbucks", "blinkit", "zepto", "bigbasket"}},
	{category.Transport, []string{"uber", "ola", "rapido", "irctc", "metro", "redbus", "indigo", "petrol", "fuel", "fastag"}},
	{category.Shopping, []string{"amazon", "flipkart", "myntra", "ajio", "meesho", "nykaa", "croma", "decathlon", "ikea"}},
	{category.Utilities, []string{"electricity", "airtel", "jio", "vodafone", "bsnl", "broadband", "recharge", "bill"}},
	{category.Entertainment, []string{"netflix", "spotify", "hotstar", "bookmyshow", "pvr", "inox", "youtube", "steam"}},
	{category.Health, []string{"pharmacy", "apollo", "medplus", "1mg", "pharmeasy", "netmeds", "hospital", "clinic"}},
	{category.Income, []string{"salary", "refund", "cashback", "dividend", "interest credit"}},
}

type keywordFile struct {
	Categories []struct {
		Name     string   `yaml:"name"`
		Keywords []string `yaml:"keywords"`
	} `yaml:"categories"`
}

// LoadTable reads a keyword table from a YAML file of the form
//
//	categories:
//	  - name: Food
//	    keywords: [swiggy, zomato]
func LoadTable(path string) (Table, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading keyword file: %w", err)
	}

	var file keywordFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("parsing keyword file %s: %w", path, err)
	}

	table := make(Table, 0, len(file.Categories))
	for _, entry := range file.Categories {
		c, err := category.Parse(entry.Name)
		if err != nil {
			return nil, fmt.Errorf("keyword file %s: %w", path, err)
		}

		table = append(table, Keywords{Category: c, Keywords: entry.Keywords})
	}

	return table, nil
}

// KeywordStrategy matches case folded keywords as substrings of the
// merchant and the message text.
type KeywordStrategy struct {
	table Table
}

// NewKeywordStrategy returns a strategy for the table. Keywords are folded
// once here.
func NewKeywordStrategy(table Table) *KeywordStrategy {
	folded := make(Table, 0, len(table))
	for _, entry := range table {
		keywords := make([]string, 0, len(entry.Keywords))
		for _, k := range entry.Keywords {
			if k = category.Fold(k); k != "" {
				keywords = append(keywords, k)
			}
		}
		folded = append(folded, Keywords{Category: entry.Category, Keywords: keywords})
	}

	return &KeywordStrategy{table: folded}
}

func (s *KeywordStrategy) Name() string {
	return "keyword"
}

func (s *KeywordStrategy) Categorize(_ context.Context, in Input) (category.Category, bool, error) {
	haystack := category.Fold(in.Merchant + " " + in.Text)

	for _, entry := range s.table {
		for _, keyword := range entry.Keywords {
			if strings.Contains(haystack, keyword) {
				return entry.Category, true, nil
			}
		}
	}

	return "", false, nil
}
