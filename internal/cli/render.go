package cli

import (
	"fmt"
	"io"

	"github.com/finsight/receipt-pipeline/internal/model"
)

// RenderResult writes a human-readable view of one workflow result.
func RenderResult(w io.Writer, result model.WorkflowResult, thresholds model.ConfidenceThresholds) {
	if !result.Success {
		fmt.Fprintln(w, ErrorStyle.Render("✗ processing failed: "+result.ErrorMessage))
		return
	}

	receipt := result.ParsedReceipt
	fmt.Fprintln(w, TitleStyle.Render("Receipt"))
	renderField(w, "Merchant", receipt.MerchantName)
	if receipt.TotalAmount != nil {
		total := receipt.TotalAmount.StringFixed(2)
		if receipt.Currency != "" {
			total += " " + receipt.Currency
		}
		renderField(w, "Total", total)
	}
	if receipt.Subtotal != nil {
		renderField(w, "Subtotal", receipt.Subtotal.StringFixed(2))
	}
	if receipt.Tax != nil {
		renderField(w, "Tax", receipt.Tax.StringFixed(2))
	}
	if receipt.Date != nil {
		renderField(w, "Date", receipt.Date.Format("2006-01-02"))
	}
	renderField(w, "Time", receipt.Time)
	renderField(w, "Payment", receipt.PaymentMethod)
	renderField(w, "Receipt #", receipt.ReceiptNumber)

	for _, item := range receipt.Items {
		line := fmt.Sprintf("  %dx %s", item.Quantity, item.Name)
		if item.Price != nil {
			line += SubtleStyle.Render("  @ " + item.Price.StringFixed(2))
		}
		fmt.Fprintln(w, line)
	}

	if result.Classification != nil {
		fmt.Fprintln(w, TitleStyle.Render("Classification"))
		renderField(w, "Category", result.Classification.Category)
		renderField(w, "Method", string(result.Classification.Method))
		renderField(w, "Confidence", fmt.Sprintf("%.2f", result.Classification.Confidence))
		if result.Classification.Reasoning != "" {
			renderField(w, "Reasoning", result.Classification.Reasoning)
		}
	}

	overall := fmt.Sprintf("overall confidence %.2f", result.OverallConfidence())
	if result.NeedsReview(thresholds) {
		fmt.Fprintln(w, WarningStyle.Render("⚠ needs review ("+overall+")"))
	} else {
		fmt.Fprintln(w, SuccessStyle.Render("✓ "+overall))
	}
}

func renderField(w io.Writer, label, value string) {
	if value == "" {
		return
	}
	fmt.Fprintf(w, "%s %s\n", LabelStyle.Render(label+":"), value)
}
