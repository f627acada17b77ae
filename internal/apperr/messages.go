package apperr

import "net/http"

type msgEntry struct {
	status int
	en     string
	ja     string
}

// messages maps every kind to its default HTTP status and bilingual user
// message. The table is built once at init and never mutated; lookupMessage
// falls back to the KindUnknown row, so resolution is total.
var messages = map[Kind]msgEntry{
	KindRequiredField: {
		status: http.StatusBadRequest,
		en:     "This field is required.",
		ja:     "この項目は必須です。",
	},
	KindInvalidEmail: {
		status: http.StatusBadRequest,
		en:     "Please enter a valid email address.",
		ja:     "メールアドレスの形式が正しくありません。",
	},
	KindInvalidPassword: {
		status: http.StatusBadRequest,
		en:     "Password must be at least 6 characters.",
		ja:     "パスワードは6文字以上で入力してください。",
	},
	KindInvalidNumber: {
		status: http.StatusBadRequest,
		en:     "Please enter a number.",
		ja:     "数値を入力してください。",
	},
	KindNegativeNumber: {
		status: http.StatusBadRequest,
		en:     "Please enter a number of 0 or more.",
		ja:     "0以上の数値を入力してください。",
	},
	KindInvalidImageURL: {
		status: http.StatusBadRequest,
		en:     "Please enter a valid image URL.",
		ja:     "画像URLの形式が正しくありません。",
	},
	KindOutOfRange: {
		status: http.StatusBadRequest,
		en:     "The value is out of the allowed range.",
		ja:     "入力値が許容範囲外です。",
	},
	KindConnectionFailed: {
		status: 0, // transport failure, no HTTP exchange happened
		en:     "Could not connect to the server. Please check your connection.",
		ja:     "サーバーに接続できませんでした。通信環境をご確認ください。",
	},
	KindNetworkTimeout: {
		status: 0,
		en:     "The request timed out. Please try again later.",
		ja:     "通信がタイムアウトしました。時間をおいて再度お試しください。",
	},
	KindUnauthorized: {
		status: http.StatusUnauthorized,
		en:     "Please log in to continue.",
		ja:     "ログインが必要です。",
	},
	KindTokenExpired: {
		status: http.StatusForbidden,
		en:     "Your session has expired. Please log in again.",
		ja:     "セッションの有効期限が切れました。再度ログインしてください。",
	},
	KindNotFound: {
		status: http.StatusNotFound,
		en:     "The requested data was not found.",
		ja:     "お探しのデータが見つかりませんでした。",
	},
	KindRateLimitExceeded: {
		status: http.StatusTooManyRequests,
		en:     "Too many requests. Please wait a moment.",
		ja:     "リクエストが多すぎます。しばらくお待ちください。",
	},
	KindInternalServerError: {
		status: http.StatusInternalServerError,
		en:     "A server error occurred. Please try again later.",
		ja:     "サーバーエラーが発生しました。時間をおいて再度お試しください。",
	},
	KindAPIUnavailable: {
		status: http.StatusServiceUnavailable,
		en:     "The external service is temporarily unavailable.",
		ja:     "外部サービスが一時的に利用できません。",
	},
	KindLoginFailed: {
		status: http.StatusUnauthorized,
		en:     "The email address or password is incorrect.",
		ja:     "メールアドレスまたはパスワードが正しくありません。",
	},
	KindSessionExpired: {
		status: http.StatusUnauthorized,
		en:     "Your session has ended. Please log in again.",
		ja:     "セッションが切れました。再度ログインしてください。",
	},
	KindCostGreaterThanPrice: {
		status: http.StatusBadRequest,
		en:     "Cost is greater than or equal to the selling price. No profit is possible.",
		ja:     "仕入れ価格が販売価格以上です。利益が出ません。",
	},
	KindInsufficientData: {
		status: http.StatusBadRequest,
		en:     "Not enough data for analysis.",
		ja:     "分析に必要なデータが不足しています。",
	},
	KindDegenerateSeries: {
		status: http.StatusBadRequest,
		en:     "The price series contains zero prices and cannot be analyzed.",
		ja:     "価格データに0円が含まれているため分析できません。",
	},
	KindInvalidQuantity: {
		status: http.StatusBadRequest,
		en:     "Quantity must be a whole number of 1 or more.",
		ja:     "数量は1以上の整数で入力してください。",
	},
	KindUnknown: {
		status: http.StatusInternalServerError,
		en:     "An unexpected error occurred.",
		ja:     "予期しないエラーが発生しました。",
	},
}

func lookupMessage(kind Kind) msgEntry {
	if entry, ok := messages[kind]; ok {
		return entry
	}
	return messages[KindUnknown]
}
