package bot

import "strings"

// Rule maps a keyword set to a canned response. A rule matches when any of
// its keywords occurs in the lowercased message.
type Rule struct {
	Name     string
	Keywords []string
	Reply    string
}

// Rules is the customer-facing keyword table. Order is part of the
// contract: the first matching rule wins, so more specific concerns
// (payment before technical, delivery before complaint) come first where
// keyword sets overlap.
var Rules = []Rule{
	{
		Name:     "stock",
		Keywords: []string{"stock", "stok", "habis", "kosong", "restock"},
		Reply:    "Terima kasih atas laporannya! Tim kami akan segera melakukan restock. Mohon ditunggu ya.",
	},
	{
		Name:     "payment",
		Keywords: []string{"bayar", "pembayaran", "transfer", "payment", "tagihan"},
		Reply:    "Baik, kami akan segera cek transaksi pembayaran Anda. Mohon kirimkan bukti transfer jika ada.",
	},
	{
		Name:     "technical",
		Keywords: []string{"error", "gagal", "tidak bisa", "gak bisa", "login", "sistem"},
		Reply:    "Mohon maaf atas kendala teknis yang Anda alami. Tim IT kami akan segera memeriksa. Silakan coba beberapa saat lagi.",
	},
	{
		Name:     "delivery",
		Keywords: []string{"kirim", "pengiriman", "telat", "kurir", "delivery"},
		Reply:    "Mohon maaf atas keterlambatan. Kami akan koordinasikan dengan tim logistik untuk pengiriman Anda.",
	},
	{
		Name:     "promotion",
		Keywords: []string{"promo", "diskon", "potongan"},
		Reply:    "Untuk info promo bulan ini, silakan cek katalog terbaru kami. Promo menarik menanti Anda!",
	},
	{
		Name:     "complaint",
		Keywords: []string{"komplain", "keluhan", "kecewa", "complaint"},
		Reply:    "Mohon maaf atas ketidaknyamanannya. Keluhan Anda sudah kami catat dan akan ditindaklanjuti segera.",
	},
}

// FallbackReply is returned when no rule matches. Never empty: the caller
// always receives a usable reply string.
const FallbackReply = "Terima kasih atas pesannya. Saya adalah asisten otomatis, kami akan membantu Anda segera. " +
	"Jika Anda ingin berbicara dengan manusia, ketik 'agent'."

// Classify maps message text to a canned reply. Deterministic and total.
func Classify(text string) string {
	lower := strings.ToLower(text)
	for _, rule := range Rules {
		for _, keyword := range rule.Keywords {
			if strings.Contains(lower, keyword) {
				return rule.Reply
			}
		}
	}
	return FallbackReply
}

// adminRules is the smaller keyword table for the internal admin channel.
var adminRules = []Rule{
	{
		Name:     "help",
		Keywords: []string{"help", "bantuan"},
		Reply:    "Halo! Admin akan segera membantu Anda. Silakan jelaskan masalah yang Anda hadapi.",
	},
	{
		Name:     "customer",
		Keywords: []string{"customer", "pelanggan"},
		Reply:    "Terima kasih atas informasinya. Admin akan segera meninjau chat customer Anda.",
	},
	{
		Name:     "urgent",
		Keywords: []string{"urgent", "penting", "mendesak"},
		Reply:    "Pesan urgent diterima. Admin akan segera merespons.",
	},
	{
		Name:     "question",
		Keywords: []string{"?"},
		Reply:    "Pertanyaan Anda telah diterima. Admin akan segera memberikan jawaban.",
	},
}

// AutoAdminReply generates the canned acknowledgment posted as "Auto Admin"
// when an agent writes into a bot-mode admin channel.
func AutoAdminReply(text string) string {
	lower := strings.ToLower(text)
	for _, rule := range adminRules {
		for _, keyword := range rule.Keywords {
			if strings.Contains(lower, keyword) {
				return rule.Reply
			}
		}
	}
	return "Pesan Anda telah diterima. Admin akan segera merespons. Terima kasih!"
}
