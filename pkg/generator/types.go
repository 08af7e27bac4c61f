package generator

const (
	// ModelStandard は通常モードで使う画像モデルです。
	ModelStandard = "gemini-2.5-flash-image"
	// ModelPro は Pro モードで使う画像モデルです。
	ModelPro = "gemini-3-pro-image-preview"
)

// ImageOutput は Core の内部解析結果
type ImageOutput struct {
	Data     []byte
	MimeType string
	UsedSeed int64
}

// RequestOptions は generateContent に渡す画像設定です。
type RequestOptions struct {
	AspectRatio string
	ImageSize   string
	Seed        *int64
}
