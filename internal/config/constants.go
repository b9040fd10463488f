// internal/config/constants.go
package config

// アプリケーション情報
const (
	AppName    = "NoteKeep"
	AppVersion = "0.3.0"
)

// デフォルト設定値
const (
	DefaultServerPort       = ":8080"
	DefaultLogLevel         = "info"
	DefaultPageSize         = 20
	DefaultMaxPageSize      = 100
	DefaultJWTExpiresInMins = 60
	DefaultMailerDriver     = "log"
)
