package logger

import "github.com/ideamans/go-l10n"

func init() {
	l10n.Register("ja", l10n.LexiconMap{
		// Host level messages (info)
		"Loading %s":                               "%s を読み込み中",
		"Loaded %s sequence: %s, %dx%d, %d frames": "%s シーケンスを読み込みました: %s, %dx%d, %d フレーム",
		"Playing at %dx%d (%s)":                    "%dx%d (%s) で再生中",
		"Playback stopped after %d renders":        "%d 回の描画後に再生を停止しました",
		"Summary saved to %s":                      "サマリーを %s に保存しました",
		"Interrupted, shutting down...":            "中断されました。シャットダウン中...",
		"Watching %s for changes":                  "%s の変更を監視しています",
		"Reloaded %s sequence: %d frames":          "%s シーケンスを再読み込みしました: %d フレーム",
		"Connected to %s":                          "%s に接続しました",

		// Frame store
		"Reading %s":                        "%s を読み込み中",
		"Detected %s container":             "%s コンテナを検出しました",
		"Decoded %d frames, loop length %s": "%d フレームをデコードしました (1ループ %s)",
		"Decoded still image %dx%d":         "静止画像 %dx%d をデコードしました",

		// Resize cache
		"Resized frame %d to %dx%d":                         "フレーム %d を %dx%d にリサイズしました",
		"Target size changed to %dx%d, dropping %d entries": "ターゲットサイズが %dx%d に変更されました。%d 件のエントリを破棄します",

		// Playback controller
		"Surface ready at %dx%d":   "サーフェス準備完了 %dx%d",
		"Surface resized to %dx%d": "サーフェスが %dx%d にリサイズされました",
		"Skipping render: %s":      "描画をスキップします: %s",
		"Advanced to frame %d":     "フレーム %d に進みました",
		"Controller closed":        "コントローラーを閉じました",

		// File watcher
		"Change detected: %s": "変更を検出しました: %s",

		// Warnings
		"Stdout is not a terminal, sixel output may be garbled": "標準出力が端末ではありません。sixel 出力が崩れる可能性があります",
		"Failed to save debug frame: %s":                        "デバッグフレームの保存に失敗しました: %s",
		"Failed to close presenter: %s":                         "プレゼンターのクローズに失敗しました: %s",
		"Failed to watch %s: %s":                                "%s の監視に失敗しました: %s",
		"Failed to reload %s: %s":                               "%s の再読み込みに失敗しました: %s",
		"Watch error: %s":                                       "監視エラー: %s",
		"MQTT connection lost: %s":                              "MQTT 接続が切断されました: %s",

		// Errors
		"Failed to present frame: %s": "フレームの表示に失敗しました: %s",
		"Failed to write summary: %s": "サマリーの書き込みに失敗しました: %s",
	})
}
