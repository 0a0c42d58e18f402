// package formatter renders inventory items for terminals and plain-text output
package formatter

import (
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/desertthunder/inventory/internal/models"
	"github.com/desertthunder/inventory/internal/shared"
	"golang.org/x/text/currency"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// Currency formats prices for one locale and ISO 4217 currency.
type Currency struct {
	printer *message.Printer
	symbol  string
	scale   int
	verb    string
}

// NewCurrency creates a Currency for a BCP 47 locale (e.g. "en-US") and an ISO 4217 code (e.g. "USD").
func NewCurrency(locale, code string) (*Currency, error) {
	tag, err := language.Parse(locale)
	if err != nil {
		return nil, fmt.Errorf("%w: locale %q: %v", shared.ErrInvalidConfig, locale, err)
	}

	unit, err := currency.ParseISO(code)
	if err != nil {
		return nil, fmt.Errorf("%w: currency %q: %v", shared.ErrInvalidConfig, code, err)
	}

	printer := message.NewPrinter(tag)
	scale, _ := currency.Standard.Rounding(unit)

	return &Currency{
		printer: printer,
		symbol:  printer.Sprint(currency.Symbol(unit)),
		scale:   scale,
		verb:    "%." + strconv.Itoa(scale) + "f",
	}, nil
}

// NewCurrencyFromConfig creates a Currency from the [shared.InventoryConfig] section.
func NewCurrencyFromConfig(cfg shared.InventoryConfig) (*Currency, error) {
	return NewCurrency(cfg.Locale, cfg.Currency)
}

// DefaultCurrency formats US dollars for en-US.
func DefaultCurrency() *Currency {
	c, err := NewCurrency("en-US", "USD")
	if err != nil {
		panic(err)
	}
	return c
}

// Format renders amount with locale grouping, the currency's standard decimals, and its symbol.
//
// The amount is rounded to the currency's decimals before the sign is chosen, so tiny negatives print as zero.
// The symbol always leads, whatever the locale's own convention.
func (c *Currency) Format(amount float64) string {
	amount = c.round(amount)

	sign := ""
	if amount < 0 {
		sign = "-"
		amount = -amount
	}
	return sign + c.symbol + c.printer.Sprintf(c.verb, amount)
}

// round rounds half away from zero to the currency's decimals and folds -0 into 0.
func (c *Currency) round(amount float64) float64 {
	pow := math.Pow10(c.scale)
	rounded := math.Round(amount*pow) / pow
	if rounded == 0 {
		return 0
	}
	return rounded
}

// Symbol returns the currency symbol for the configured locale.
func (c *Currency) Symbol() string { return c.symbol }

// FormatPrice renders the item's price.
func (c *Currency) FormatPrice(item models.Item) string {
	return c.Format(item.Price)
}

// InStockLabel renders a quantity as shown on the item list.
func InStockLabel(quantity int) string {
	return "In Stock: " + strconv.Itoa(quantity)
}

// ItemTable writes an aligned table of items to w.
func ItemTable(w io.Writer, items []models.Item, c *Currency) error {
	if len(items) == 0 {
		_, err := fmt.Fprintln(w, "No items in the inventory.")
		return err
	}

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tNAME\tPRICE\tQUANTITY")
	for _, item := range items {
		fmt.Fprintf(tw, "%d\t%s\t%s\t%d\n", item.ID, item.Name, c.FormatPrice(item), item.Quantity)
	}

	if err := tw.Flush(); err != nil {
		return fmt.Errorf("failed to write item table: %w", err)
	}
	return nil
}

// ItemDetail writes one item as labelled lines to w.
func ItemDetail(w io.Writer, item models.Item, c *Currency) error {
	var b strings.Builder

	fmt.Fprintf(&b, "Item:           %s\n", item.Name)
	fmt.Fprintf(&b, "ID:             %d\n", item.ID)
	fmt.Fprintf(&b, "Price:          %s\n", c.FormatPrice(item))
	fmt.Fprintf(&b, "Quantity:       %d\n", item.Quantity)
	if !item.InStock() {
		b.WriteString("Status:         Out of stock\n")
	}

	if _, err := io.WriteString(w, b.String()); err != nil {
		return fmt.Errorf("failed to write item: %w", err)
	}
	return nil
}
