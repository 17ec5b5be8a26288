package config

import "github.com/spf13/viper"

var (
	KeyStrict         = "randomimage.strict"
	KeyNoCache        = "randomimage.nocache"
	KeyMiserMode      = "randomimage.misermode"
	KeyThumbWidth     = "randomimage.thumbwidth"
	KeyStorePath      = "store.path"
	KeyMediaDirectory = "media.directory"
	KeyServeAddress   = "serve.address"
	KeyLogLevel       = "log.level"
)

// Settings is the read-only view of the configuration consumed by the
// renderer. It is taken by value so that a render never observes a change
// made while it runs.
type Settings struct {
	// Restrict random sampling to files whose major MIME type is "image".
	Strict bool
	// Mark pages containing a random image as uncacheable.
	NoCache bool
	// Thumbnail width used when the tag gives no size.
	ThumbWidth int
}

// Load snapshots the current viper state.
func Load() Settings {
	return Settings{
		Strict:     Strict(),
		NoCache:    viper.GetBool(KeyNoCache),
		ThumbWidth: ThumbWidth(),
	}
}

// Strict defaults to the inverse of miser mode unless configured explicitly.
func Strict() bool {
	if viper.IsSet(KeyStrict) {
		return viper.GetBool(KeyStrict)
	}
	return !viper.GetBool(KeyMiserMode)
}

func ThumbWidth() int {
	if w := viper.GetInt(KeyThumbWidth); w > 0 {
		return w
	}
	return DefaultThumbWidth()
}

func HasMediaDirectory() bool {
	return viper.IsSet(KeyMediaDirectory)
}

func MediaDirectory() string {
	return viper.GetString(KeyMediaDirectory)
}

func StorePath() string {
	if viper.IsSet(KeyStorePath) {
		return viper.GetString(KeyStorePath)
	}
	return DefaultStorePath()
}

func ServeAddress() string {
	if viper.IsSet(KeyServeAddress) {
		return viper.GetString(KeyServeAddress)
	}
	return DefaultServeAddress()
}

func LogLevel() string {
	if viper.IsSet(KeyLogLevel) {
		return viper.GetString(KeyLogLevel)
	}
	return "info"
}

func DefaultStorePath() string {
	return "randomimage.db"
}

func DefaultServeAddress() string {
	return ":8000"
}

func DefaultThumbWidth() int {
	return 180
}
