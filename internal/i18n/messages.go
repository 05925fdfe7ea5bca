package i18n

import "strings"

// Localized user-facing strings for the HTTP gateway. The engine itself only
// returns outcome kinds; presentation stays out here.

const DefaultLang = "en"

var messages = map[string]map[string]string{
	"en": {
		"token_missing":       "Token is missing!",
		"token_expired":       "Token has expired!",
		"token_invalid":       "Token is invalid!",
		"no_data":             "No data provided",
		"missing_fields":      "Missing required fields",
		"password_short":      "Password must be at least 8 characters",
		"user_exists":         "Username or email already exists",
		"register_failed":     "Registration failed",
		"user_created":        "User created successfully",
		"invalid_credentials": "Invalid username or password",
		"login_failed":        "Login failed",
		"flight_search_failed": "Failed to search flights",
		"flight_id_required":  "Flight ID is required",
		"flight_not_found":    "Flight not found",
		"no_seats":            "No available seats",
		"booking_failed":      "Booking failed",
		"booking_retry":       "Booking temporarily unavailable, please retry",
		"booking_success":     "Flight booked successfully",
		"stats_failed":        "Failed to generate booking stats",
		"no_data_found":       "No data found",
		"bookings_failed":     "Failed to get bookings",
		"not_found":           "Endpoint not found",
		"server_error":        "Internal server error",
	},
	"fa": {
		"token_missing":       "توکن وجود ندارد!",
		"token_expired":       "توکن منقضی شده است!",
		"token_invalid":       "توکن نامعتبر است!",
		"no_data":             "داده‌ای ارائه نشده است",
		"missing_fields":      "فیلدهای مورد نیاز وجود ندارند",
		"password_short":      "رمز عبور باید حداقل ۸ کاراکتر باشد",
		"user_exists":         "نام کاربری یا ایمیل قبلاً ثبت شده است",
		"register_failed":     "ثبت‌نام ناموفق بود",
		"user_created":        "کاربر با موفقیت ایجاد شد",
		"invalid_credentials": "نام کاربری یا رمز عبور نامعتبر است",
		"login_failed":        "ورود ناموفق بود",
		"flight_search_failed": "جستجوی پروازها ناموفق بود",
		"flight_id_required":  "شناسه پرواز مورد نیاز است",
		"flight_not_found":    "پرواز یافت نشد",
		"no_seats":            "صندلی موجود نیست",
		"booking_failed":      "رزرو ناموفق بود",
		"booking_retry":       "رزرو موقتاً در دسترس نیست، دوباره تلاش کنید",
		"booking_success":     "پرواز با موفقیت رزرو شد",
		"stats_failed":        "تولید آمار رزروها ناموفق بود",
		"no_data_found":       "داده‌ای یافت نشد",
		"bookings_failed":     "دریافت رزروها ناموفق بود",
		"not_found":           "مسیر یافت نشد",
		"server_error":        "خطای داخلی سرور",
	},
}

// Lang extracts the primary language tag from an Accept-Language header.
func Lang(acceptLanguage string) string {
	lang := strings.ToLower(strings.TrimSpace(strings.Split(acceptLanguage, ",")[0]))
	if idx := strings.Index(lang, "-"); idx > 0 {
		lang = lang[:idx]
	}
	if _, ok := messages[lang]; !ok {
		return DefaultLang
	}
	return lang
}

func Message(key, lang string) string {
	if msg, ok := messages[lang][key]; ok {
		return msg
	}
	if msg, ok := messages[DefaultLang][key]; ok {
		return msg
	}
	return key
}
