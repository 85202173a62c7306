package rewards

import (
	"bytes"
	"fmt"
	"net/http"

	"github.com/julienschmidt/httprouter"
	"github.com/phpdave11/gofpdf"
	"github.com/skip2/go-qrcode"
)

// PrintVoucher renders a redeemed reward as a downloadable PDF with the
// redeem code both printed and embedded in a QR code, so partner stores
// can scan instead of typing.
func (h *Handler) PrintVoucher(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	code := ps.ByName("code")

	redemption, ok := h.lookup(code)
	if !ok {
		http.Error(w, "Voucher not found or expired", http.StatusNotFound)
		return
	}

	qrPayload := fmt.Sprintf("%s|%s|%d", redemption.Reward.RewardID, redemption.RedeemCode, redemption.RedeemedAt.Unix())
	qrPNG, err := qrcode.Encode(qrPayload, qrcode.Medium, 256)
	if err != nil {
		http.Error(w, "Failed to generate QR code", http.StatusInternalServerError)
		return
	}

	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.AddPage()
	pdf.SetFont("Arial", "B", 16)
	pdf.Cell(40, 10, "Eco-Points Reward Voucher")
	pdf.Ln(12)

	pdf.SetFont("Arial", "", 12)
	pdf.Cell(0, 10, fmt.Sprintf("Reward: %s", redemption.Reward.Name))
	pdf.Ln(8)
	pdf.Cell(0, 10, fmt.Sprintf("Value: %s", redemption.Reward.Value))
	pdf.Ln(8)
	pdf.Cell(0, 10, fmt.Sprintf("Redeem Code: %s", redemption.RedeemCode))
	pdf.Ln(8)
	pdf.Cell(0, 10, fmt.Sprintf("Redeemed: %s", redemption.RedeemedAt.Format("2 Jan 2006 15:04")))
	pdf.Ln(12)

	imageOpts := gofpdf.ImageOptions{ImageType: "PNG"}
	pdf.RegisterImageOptionsReader("qr", imageOpts, bytes.NewReader(qrPNG))
	pdf.ImageOptions("qr", 150, 40, 40, 40, false, imageOpts, 0, "")

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		http.Error(w, "Failed to generate PDF", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", "attachment; filename=voucher-"+redemption.RedeemCode+".pdf")
	w.WriteHeader(http.StatusOK)
	w.Write(buf.Bytes())
}
