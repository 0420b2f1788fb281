// Package main provides localization for the frameview CLI.
package main

import (
	"github.com/ideamans/go-l10n"
)

func init() {
	// Register Japanese translations for CLI messages.
	l10n.Register("ja", l10n.LexiconMap{
		// Flag categories
		"Configuration": "設定ファイル",
		"Logging":       "ログ",
		"Surface":       "サーフェス",
		"Scaling":       "スケーリング",
		"Playback":      "再生",
		"Output":        "出力",
		"Debug":         "デバッグ",

		// Root command
		"Play still images and animations at their authored timing":                    "静止画とアニメーションを本来のタイミングで再生",
		"frameview decodes an image or animation and plays it on a resizable surface.": "frameviewは画像やアニメーションをデコードし、リサイズ可能なサーフェスで再生します。",

		// Commands
		"Play an image or animation":  "画像またはアニメーションを再生",
		"Show what a file decodes to": "ファイルのデコード結果を表示",
		"Show version information":    "バージョン情報を表示",
		"frameview version %s":        "frameview バージョン %s",

		// Common flags
		"Configuration file (YAML or TOML)":    "設定ファイル（YAMLまたはTOML）",
		"Log level (debug, info, warn, error)": "ログレベル（debug, info, warn, error）",
		"Suppress all log output":              "全てのログ出力を抑制",

		// Surface flags
		"Surface width (default: 640)":                                 "サーフェスの幅（デフォルト: 640）",
		"Surface height (default: 480)":                                "サーフェスの高さ（デフォルト: 480）",
		"Destination pixel format (xrgb8888, xbgr8888, rgb565)":        "出力ピクセル形式（xrgb8888, xbgr8888, rgb565）",
		"Resize the surface during playback, as AFTER_MS:WIDTHxHEIGHT": "再生中にサーフェスをリサイズ（AFTER_MS:WIDTHxHEIGHT 形式）",

		// Scaling flags
		"Resampling filter (nearest, approx-bilinear, catmull-rom)": "リサンプリングフィルター（nearest, approx-bilinear, catmull-rom）",
		"Fit mode (stretch, contain)":                               "フィットモード（stretch, contain）",
		"Letterbox color (hex, e.g., #000000)":                      "余白の色（16進数、例: #000000）",

		// Playback flags
		"Skip frames whose time has passed after a stall":           "停滞後に表示時間を過ぎたフレームをスキップ",
		"Render rate of the host loop":                              "ホストループの描画レート",
		"Stop after this many milliseconds (0 = until interrupted)": "指定ミリ秒後に停止（0 = 中断されるまで）",
		"Reload the file when it changes on disk":                   "ファイルが変更されたら再読み込み",

		// Output flags
		"Present frames on the terminal as sixel images":                  "フレームをsixel画像として端末に表示",
		"Dither sixel output":                                             "sixel出力をディザリング",
		"Output playback summary to file (Markdown format)":               "再生サマリーをファイルに出力（Markdown形式）",
		"Publish frames to this MQTT broker (e.g., tcp://localhost:1883)": "フレームをこのMQTTブローカーに配信（例: tcp://localhost:1883）",
		"MQTT topic for published frames":                                 "配信フレームのMQTTトピック",

		// Debug flags
		"Enable debug output":        "デバッグ出力を有効化",
		"Directory for debug output": "デバッグ出力のディレクトリ",

		// Error messages
		"Exactly one file argument is required": "ファイル引数を1つ指定してください",
		"Failed to load %s: %s":                 "%s の読み込みに失敗しました: %s",

		// Info output
		"File: %s":          "ファイル: %s",
		"Format: %s (%s)":   "形式: %s (%s)",
		"Resolution: %dx%d": "解像度: %dx%d",
		"Frames: %d":        "フレーム数: %d",
		"Loop length: %dms": "1ループの長さ: %dms",

		// Summary content
		"Playback Summary": "再生サマリー",
		"Source":           "ソース",
		"Settings":         "設定",
		"Resize Cache":     "リサイズキャッシュ",
		"Generated at":     "生成日時",

		"File":             "ファイル",
		"Format":           "形式",
		"Resolution":       "解像度",
		"Frames":           "フレーム数",
		"Loop Length":      "1ループの長さ",
		"File Size":        "ファイルサイズ",
		"Advance Policy":   "フレーム送り方式",
		"Render Rate":      "描画レート",
		"Stopped By":       "停止理由",
		"Wall Time":        "経過時間",
		"Frames Presented": "表示フレーム数",
		"Skipped Renders":  "スキップした描画",
		"Frame Advances":   "フレーム送り回数",
		"Resizes":          "リサイズ回数",
		"Reloads":          "再読み込み回数",
		"Final Surface":    "最終サーフェス",
		"Hits":             "ヒット",
		"Misses":           "ミス",
		"Invalidations":    "無効化",
		"Hit Rate":         "ヒット率",

		"static":      "静止画",
		"animated":    "アニメーション",
		"duration":    "再生時間の経過",
		"closed":      "クローズ",
		"interrupted": "中断",
	})
}
