package openapifx

type Config struct {
	Enabled bool
	// Host advertised in the served document, empty keeps the generated one
	PublicHost string
	// Base path advertised in the served document, empty keeps the generated one
	PublicPath string
}
