package service

// QRCodeService defines the interface for QR code generation services
type QRCodeService interface {
	// GenerateProfileQR generates a PNG QR code pointing at the public
	// profile URL for the given vanity username.
	GenerateProfileQR(username string) ([]byte, error)
}
