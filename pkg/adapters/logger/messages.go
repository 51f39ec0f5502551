package logger

import "github.com/ideamans/go-l10n"

func init() {
	l10n.Register("ja", l10n.LexiconMap{
		// Lifecycle (debug)
		"Removing stale sandbox %s": "古いサンドボックス %s を削除中",
		"Sandbox ready at %s":       "サンドボックスを %s に作成しました",
		"Sandbox destroyed: %s":     "サンドボックスを破棄しました: %s",
		"Deleting %d paths":         "%d 個のパスを削除中",
		"Hashing %d files":          "%d 個のファイルのハッシュを計算中",

		// Retries (debug)
		"Transient delete error, retrying in %s (%d/%d): %v": "一時的な削除エラー。%s 後に再試行します (%d/%d): %v",

		// Deprecations (warn)
		"AbsolutePath has been deprecated. Use Resolve instead": "AbsolutePath は非推奨です。Resolve を使用してください",
		"DeleteFile has been deprecated. Use Delete instead":    "DeleteFile は非推奨です。Delete を使用してください",
	})
}
