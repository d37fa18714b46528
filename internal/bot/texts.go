package bot

import "github.com/tubefetch/tubefetch/internal/model"

// User-facing texts. The bot speaks Russian, matching its audience.
const (
	TextGreeting        = "Привет! Отправь ссылку на YouTube."
	TextDownloading     = "📥 Скачивание..."
	TextAgainButton     = "🔄 Другой формат"
	TextSessionNotFound = "Сессия не найдена"
	TextUnknownAction   = "Неизвестное действие"
	TextTransferFailed  = "❌ Не получилось скачать. Попробуй ещё раз или выбери другой формат."

	TextExtractionUnknown       = "❌ Не удалось получить информацию по ссылке."
	TextExtractionAgeRestricted = "🔞 Видео с возрастным ограничением, скачать его не получится."
	TextExtractionRegionBlocked = "🌍 Видео недоступно в регионе сервера."
	TextExtractionCopyright     = "⚖️ Видео заблокировано по требованию правообладателя."
)

// extractionErrorText maps a classified extraction failure to the localized
// reply shown in chat.
func extractionErrorText(kind model.ExtractionErrorKind) string {
	switch kind {
	case model.ExtractionAgeRestricted:
		return TextExtractionAgeRestricted
	case model.ExtractionRegionBlocked:
		return TextExtractionRegionBlocked
	case model.ExtractionCopyrightBlocked:
		return TextExtractionCopyright
	}
	return TextExtractionUnknown
}
