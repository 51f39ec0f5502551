// Package main provides localization for the tempsandbox CLI.
package main

import (
	"github.com/ideamans/go-l10n"
)

func init() {
	// Register Japanese translations for CLI messages.
	l10n.Register("ja", l10n.LexiconMap{
		// Root command
		"Manage disposable sandbox directories for tests": "テスト用の使い捨てサンドボックスディレクトリを管理",

		// Global flags
		"File that owns the sandbox, usually a test file":                  "サンドボックスを所有するファイル（通常はテストファイル）",
		"Directory the caller is relative to (default: current directory)": "呼び出し元の基準ディレクトリ（デフォルト: カレントディレクトリ）",
		"Parent directory of all sandboxes (default: system temp dir)":     "全サンドボックスの親ディレクトリ（デフォルト: システムの一時ディレクトリ）",
		"YAML configuration file":                                          "YAML設定ファイル",

		// Logging flags
		"Log level (debug, info, warn, error)": "ログレベル（debug, info, warn, error）",
		"Suppress all log output":              "全てのログ出力を抑制",

		// Commands
		"Create the sandbox, wiping any previous one, and print its path": "既存のものを削除してサンドボックスを作成し、パスを表示",
		"Print the absolute path of a sandbox path":                       "サンドボックス内パスの絶対パスを表示",
		"Write a file; contents are read from stdin when omitted":         "ファイルを書き込み（内容省略時は標準入力から読み込み）",
		"Parse contents as JSON and store them re-indented":               "内容をJSONとして解析し、整形して保存",
		"Print a file; JSON files are printed re-indented":                "ファイルを表示（JSONは整形して表示）",
		"Print the MD5 of a file":                                         "ファイルのMD5を表示",
		"List files below a sandbox directory":                            "サンドボックス内ディレクトリのファイル一覧を表示",
		"Print a JSON map of file paths to MD5 hashes":                    "ファイルパスとMD5ハッシュのJSONマップを表示",
		"Delete paths matching glob patterns":                             "globパターンに一致するパスを削除",
		"Delete the sandbox contents but keep its root":                   "ルートを残してサンドボックスの内容を削除",
		"Delete the sandbox":                                              "サンドボックスを削除",

		// Runtime messages
		"Created %s": "%s を作成しました",
		"Wrote %s":   "%s を書き込みました",
		"Removed %s": "%s を削除しました",

		// Error messages
		"Command failed: %s": "コマンドが失敗しました: %s",
	})
}
