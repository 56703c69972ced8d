// internal/tools/calculator.go
package tools

import (
	"context"
	"errors"
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"
)

// Kind tags a CalculationReport variant
type Kind string

// Report kinds, in classification precedence order
const (
	KindBudget     Kind = "budget"
	KindCurrency   Kind = "currency"
	KindArithmetic Kind = "arithmetic"
)

// CalculationReport is the tagged result of evaluating one expression. Text is
// always populated; Err carries the failure when a path could not complete.
type CalculationReport struct {
	Kind       Kind
	Expression string
	Result     float64
	Amounts    []float64
	Text       string
	Err        error
}

// Error taxonomy for the arithmetic and amount-extraction paths
var (
	ErrInvalidExpression = errors.New("invalid mathematical expression")
	ErrNoAmount          = errors.New("no numeric amount found")
)

var (
	budgetKeywords  = []string{"budget", "cost", "expense", "total", "monthly", "annual"}
	currencySymbols = []string{"$", "€", "£", "¥"}

	// arithmeticChars strips everything outside the arithmetic character set
	arithmeticChars = regexp.MustCompile(`[^0-9+\-*/().\s]`)
	// numberPattern extracts amounts with optional comma separators
	numberPattern = regexp.MustCompile(`[0-9,]+\.?[0-9]*`)
)

// exchangeRates holds approximate USD-based conversion rates. The reverse
// EUR/GBP entries are part of the published table but unused by the
// conversion path.
var exchangeRates = map[string]float64{
	"usd_to_eur": 0.85,
	"usd_to_gbp": 0.75,
	"usd_to_cad": 1.25,
	"usd_to_aud": 1.35,
	"usd_to_jpy": 110.0,
	"eur_to_usd": 1.18,
	"gbp_to_usd": 1.33,
}

// budgetCategories label positional amounts in a budget breakdown
var budgetCategories = []string{
	"Tuition & Fees",
	"Accommodation",
	"Living Expenses",
	"Travel & Transport",
	"Books & Supplies",
	"Personal & Entertainment",
	"Emergency Fund",
}

// Evaluate classifies a free-text query and produces a formatted report. It
// never fails: every error is rendered into the report text. Identical input
// always yields byte-identical text.
func Evaluate(text string) CalculationReport {
	expr := strings.TrimSpace(text)
	lower := strings.ToLower(expr)

	// Budget keywords preempt currency symbols, which preempt arithmetic.
	for _, kw := range budgetKeywords {
		if strings.Contains(lower, kw) {
			return budgetAnalysis(expr)
		}
	}
	for _, sym := range currencySymbols {
		if strings.Contains(expr, sym) {
			return currencyCalculation(expr)
		}
	}
	if strings.Contains(lower, "usd") || strings.Contains(lower, "eur") {
		return currencyCalculation(expr)
	}
	return basicCalculation(expr)
}

// basicCalculation handles the arithmetic path
func basicCalculation(expr string) CalculationReport {
	report := CalculationReport{Kind: KindArithmetic, Expression: expr}

	cleaned := arithmeticChars.ReplaceAllString(expr, "")
	cleaned = strings.ReplaceAll(cleaned, "$", "")
	cleaned = strings.ReplaceAll(cleaned, ",", "")
	cleaned = strings.TrimSpace(cleaned)

	if cleaned == "" {
		report.Err = ErrInvalidExpression
		report.Text = "❌ Invalid mathematical expression"
		return report
	}

	result, err := evalExpression(cleaned)
	if err != nil {
		report.Err = err
		if errors.Is(err, ErrDivisionByZero) {
			report.Text = "❌ Error: Division by zero"
		} else {
			report.Text = fmt.Sprintf("❌ Calculation error: %v", err)
		}
		return report
	}

	report.Result = roundResult(result)
	report.Text = fmt.Sprintf(`🧮 Calculation: %s
✅ Result: %s

💡 Financial Context:
If this is for study abroad planning, consider:
• Tuition fees vary by program and university
• Living costs depend on city and lifestyle
• Include visa, travel, and emergency fund costs
• Research scholarships and financial aid options`, cleaned, formatResult(report.Result))
	return report
}

// currencyCalculation handles the currency path
func currencyCalculation(expr string) CalculationReport {
	report := CalculationReport{Kind: KindCurrency, Expression: expr}

	numbers := numberPattern.FindAllString(expr, -1)
	if len(numbers) == 0 {
		report.Err = ErrNoAmount
		report.Text = fmt.Sprintf("💱 Currency query: %s\n💡 Please specify amount and currencies for conversion", expr)
		return report
	}

	amount, err := strconv.ParseFloat(strings.ReplaceAll(numbers[0], ",", ""), 64)
	if err != nil {
		report.Err = fmt.Errorf("could not parse currency amount: %w", err)
		report.Text = "❌ Could not parse currency amount"
		return report
	}

	report.Amounts = []float64{amount}
	report.Text = fmt.Sprintf(`💱 Currency Calculation: %s
💰 Amount: %s

📊 Approximate Conversions (USD base):
• EUR (Euro): €%s
• GBP (British Pound): £%s
• CAD (Canadian Dollar): C$%s
• AUD (Australian Dollar): A$%s

⚠️ Note: These are approximate rates. Check current exchange rates for accurate conversions.
Use xe.com, google.com, or bank websites for real-time rates.

💡 Study Abroad Tip: Factor in exchange rate fluctuations when budgeting!`,
		expr,
		formatResult(amount),
		formatAmount(amount*exchangeRates["usd_to_eur"]),
		formatAmount(amount*exchangeRates["usd_to_gbp"]),
		formatAmount(amount*exchangeRates["usd_to_cad"]),
		formatAmount(amount*exchangeRates["usd_to_aud"]))
	return report
}

// budgetAnalysis handles the budget path
func budgetAnalysis(expr string) CalculationReport {
	report := CalculationReport{Kind: KindBudget, Expression: expr}

	numbers := numberPattern.FindAllString(expr, -1)
	if len(numbers) == 0 {
		report.Err = ErrNoAmount
		report.Text = fmt.Sprintf(`💼 Budget Planning Query: %s

📋 Study Abroad Budget Template:
• Tuition & Fees: $____
• Accommodation: $____
• Food & Groceries: $____
• Transportation: $____
• Books & Supplies: $____
• Personal Expenses: $____
• Travel & Exploration: $____
• Emergency Fund: $____

💡 Use specific numbers for detailed budget analysis!
Example: "calculate 35000 + 12000 + 8000 annual budget"`, expr)
		return report
	}

	amounts := make([]float64, 0, len(numbers))
	var total float64
	for _, num := range numbers {
		v, err := strconv.ParseFloat(strings.ReplaceAll(num, ",", ""), 64)
		if err != nil {
			report.Err = fmt.Errorf("could not parse numbers: %w", err)
			report.Text = fmt.Sprintf("❌ Could not parse numbers in: %s", expr)
			return report
		}
		amounts = append(amounts, v)
		total += v
	}

	breakdown := ""
	if len(amounts) > 1 {
		var b strings.Builder
		b.WriteString("\n📊 Budget Breakdown:")
		for i, amount := range amounts {
			category := fmt.Sprintf("Item %d", i+1)
			if i < len(budgetCategories) {
				category = budgetCategories[i]
			}
			b.WriteString(fmt.Sprintf("\n• %s: $%s", category, formatAmount(amount)))
		}
		breakdown = b.String()
	}

	report.Amounts = amounts
	report.Result = total
	report.Text = fmt.Sprintf(`💼 Budget Analysis: %s
💰 Total Amount: $%s
%s

📈 Financial Planning:
• Annual Total: $%s
• Monthly Average: $%s
• Weekly Average: $%s

💡 Study Abroad Budget Tips:
• Add 10-20%% buffer for unexpected expenses
• Research local cost of living variations
• Consider seasonal price fluctuations
• Look into student discounts and deals
• Plan for currency exchange fees

⚠️ Remember to budget for:
✓ Visa application fees
✓ Health insurance requirements
✓ Initial setup costs (deposits, etc.)
✓ Home visits during breaks`,
		expr,
		formatAmount(total),
		breakdown,
		formatAmount(total),
		formatAmount(total/12),
		formatAmount(total/52))
	return report
}

// roundResult normalizes a whole-valued float and rounds everything else to
// two decimal places
func roundResult(v float64) float64 {
	if v == math.Trunc(v) {
		return v
	}
	return math.Round(v*100) / 100
}

// formatResult renders a whole value without decimals, anything else with two
func formatResult(v float64) string {
	if v == math.Trunc(v) {
		return groupThousands(strconv.FormatFloat(v, 'f', 0, 64))
	}
	return formatAmount(v)
}

// formatAmount renders a value with two decimal places and thousands
// separators
func formatAmount(v float64) string {
	return groupThousands(strconv.FormatFloat(v, 'f', 2, 64))
}

// groupThousands inserts comma separators into the integer part of a
// formatted number
func groupThousands(s string) string {
	sign := ""
	if strings.HasPrefix(s, "-") {
		sign = "-"
		s = s[1:]
	}
	intPart, frac := s, ""
	if i := strings.Index(s, "."); i >= 0 {
		intPart, frac = s[:i], s[i:]
	}
	if len(intPart) <= 3 {
		return sign + intPart + frac
	}
	var b strings.Builder
	lead := len(intPart) % 3
	if lead > 0 {
		b.WriteString(intPart[:lead])
	}
	for i := lead; i < len(intPart); i += 3 {
		if b.Len() > 0 {
			b.WriteString(",")
		}
		b.WriteString(intPart[i : i+3])
	}
	return sign + b.String() + frac
}

// CalculateTool implements the Tool interface over Evaluate
type CalculateTool struct{}

// NewCalculateTool creates the calculator tool
func NewCalculateTool() *CalculateTool {
	return &CalculateTool{}
}

// Name returns the tool identifier
func (t *CalculateTool) Name() string {
	return CapabilityCalculate
}

// Description returns what the tool does
func (t *CalculateTool) Description() string {
	return "Evaluate arithmetic, currency conversion and budget analysis queries"
}

// Run evaluates the expression; failures render as text
func (t *CalculateTool) Run(ctx context.Context, input string) string {
	return Evaluate(input).Text
}
