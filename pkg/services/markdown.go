package services

import (
	"strings"

	"nexusinv-api/pkg/models"
)

// FormatMessage はアシスタント応答のMarkdownサブセットを構造化ブロックに変換する。
// 対応するのは ##/### 見出し、-/* 箇条書き、"1. " 形式の番号行、空行、段落のみ。
// インラインは **太字** のペアだけを解釈し、閉じない ** はそのまま文字として残す。
func FormatMessage(text string) []models.MessageBlock {
	lines := strings.Split(text, "\n")
	blocks := make([]models.MessageBlock, 0, len(lines))

	for _, line := range lines {
		trimmed := strings.TrimSpace(line)

		switch classifyLine(trimmed) {
		case models.BlockHeading2:
			blocks = append(blocks, models.MessageBlock{
				Kind:  models.BlockHeading2,
				Spans: parseBoldSpans(strings.TrimPrefix(trimmed, "## ")),
			})
		case models.BlockHeading3:
			blocks = append(blocks, models.MessageBlock{
				Kind:  models.BlockHeading3,
				Spans: parseBoldSpans(strings.TrimPrefix(trimmed, "### ")),
			})
		case models.BlockBullet:
			blocks = append(blocks, models.MessageBlock{
				Kind:  models.BlockBullet,
				Spans: parseBoldSpans(trimmed[2:]),
			})
		case models.BlockNumbered:
			blocks = append(blocks, models.MessageBlock{
				Kind:  models.BlockNumbered,
				Spans: parseBoldSpans(trimmed),
			})
		case models.BlockBreak:
			blocks = append(blocks, models.MessageBlock{Kind: models.BlockBreak})
		default:
			// 段落は行頭の字下げを保持するため元の行を使う
			blocks = append(blocks, models.MessageBlock{
				Kind:  models.BlockParagraph,
				Spans: parseBoldSpans(line),
			})
		}
	}

	return blocks
}

// classifyLine はトリム済みの1行をブロック種別に分類する
func classifyLine(trimmed string) models.BlockKind {
	switch {
	case trimmed == "":
		return models.BlockBreak
	case strings.HasPrefix(trimmed, "## "):
		return models.BlockHeading2
	case strings.HasPrefix(trimmed, "### "):
		return models.BlockHeading3
	case strings.HasPrefix(trimmed, "- "), strings.HasPrefix(trimmed, "* "):
		return models.BlockBullet
	case isNumberedLine(trimmed):
		return models.BlockNumbered
	default:
		return models.BlockParagraph
	}
}

// isNumberedLine は "1. " のような番号行かどうかを判定する
func isNumberedLine(s string) bool {
	i := 0
	for i < len(s) && s[i] >= '0' && s[i] <= '9' {
		i++
	}
	return i > 0 && i+1 < len(s) && s[i] == '.' && s[i+1] == ' '
}

// parseBoldSpans は **text** のペアだけを太字スパンとして切り出す。
// 閉じる ** が見つからない場合はマーカーを含めて通常テキスト扱い。
func parseBoldSpans(text string) []models.Span {
	spans := make([]models.Span, 0, 2)
	rest := text

	for rest != "" {
		open := strings.Index(rest, "**")
		if open < 0 {
			spans = append(spans, models.Span{Kind: models.SpanText, Text: rest})
			break
		}

		end := strings.Index(rest[open+2:], "**")
		if end < 0 {
			// 閉じないマーカーはリテラル
			spans = append(spans, models.Span{Kind: models.SpanText, Text: rest})
			break
		}

		if open > 0 {
			spans = append(spans, models.Span{Kind: models.SpanText, Text: rest[:open]})
		}
		spans = append(spans, models.Span{Kind: models.SpanBold, Text: rest[open+2 : open+2+end]})
		rest = rest[open+2+end+2:]
	}

	if len(spans) == 0 {
		spans = append(spans, models.Span{Kind: models.SpanText, Text: ""})
	}
	return spans
}
