package config

const (
	// MaxCaptionLength is the maximum length for photo captions.
	// Limited to 1000 to keep captions readable in listings; longer
	// text belongs in a regular post.
	MaxCaptionLength = 1000

	// MaxMediaKeyLength bounds the opaque pending-media handle. Keys are
	// storage paths or ids issued by the upload service, never free text.
	MaxMediaKeyLength = 255

	// MaxAspectsPerPhoto bounds the number of aspects a single photo can
	// be shared to. Sharing with more contexts than this indicates the
	// photo should simply be public.
	MaxAspectsPerPhoto = 50

	// DefaultListLimit is the page size for photo listings when the
	// client does not page explicitly via max_time.
	DefaultListLimit = 100
)
