package domain

// GenerationResult は履歴に残る生成結果です。作成後は変更しません。
type GenerationResult struct {
	ID        string `json:"id"`
	ImageURL  string `json:"imageUrl"`
	Prompt    string `json:"prompt"`
	Timestamp int64  `json:"timestamp"` // ミリ秒、単調非減少
	Seed      int64  `json:"seed"`
	Model     string `json:"model"`
}
