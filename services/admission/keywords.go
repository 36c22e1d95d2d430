package admission

// generalStopWords are dropped from the query when measuring how much of a
// university's full name the query spells out.
var generalStopWords = []string{
	"đại", "học", "trường", "có", "là", "phí", "gì", "thế", "nào",
	"bao", "nhiêu", "ngành", "điểm", "chuẩn",
}

// nameWordStopWords is the lighter list used when matching single query words
// against the words of a university name.
var nameWordStopWords = []string{
	"học", "phí", "là", "có", "gì", "thế", "nào", "trường",
}

// countStopWords are removed to isolate the university part of a
// "how many majors does X have" question.
var countStopWords = []string{
	"có", "bao", "nhiều", "ngành", "mấy", "là", "gì",
}

// programStopWords are removed to isolate the major part of a
// "which university offers X" question.
var programStopWords = []string{
	"trường", "có", "ngành", "nào", "là", "gì", "thế", "vậy",
}

// CuratedKeywords catches abbreviated or partial references to a university
// that plain substring matching misses: abbreviations, distinguishing name
// fragments and place names.
var CuratedKeywords = []string{
	// University abbreviations
	"fpt", "hcmut", "hust", "dtu", "ctu", "hu", "udn", "tnu", "vinhu", "ptit", "ptithcm",
	"neu", "vnu", "uit", "uet", "hutech", "buv", "dut", "hsb",

	// Name fragments
	"bách", "khoa", "duy", "tân", "vinh", "huế", "ngân", "hàng", "hậu", "cần",
	"âm", "nhạc", "báo", "chí", "biên", "phòng", "thanh", "thiếu", "niên", "cảnh", "sát",
	"an", "ninh", "ngoại", "giao", "nông", "nghiệp", "quân", "y", "tài", "chính",
	"kỹ", "thuật", "mật", "mã", "hàng", "không", "hành", "chính", "tòa", "án",
	"phụ", "nữ", "chính", "sách", "phát", "triển", "công", "đoàn", "quốc", "tế",

	// Place names
	"hà", "nội", "hcm", "cần", "thơ", "đà", "nẵng", "quy", "nhơn", "thái", "nguyên",
	"hải", "phòng", "nha", "trang", "vũng", "tàu", "nghệ", "an", "đồng", "nai",
	"ecopark", "văn", "giang", "hưng", "yên", "long", "thành", "quảng", "trị",
}

// CountIntentKeywords is the short list of distinctive names preferred when
// resolving the university of a count question.
// TODO: "huflit" and "tdtu" are absent from CuratedKeywords; reconcile once the
// catalog owners confirm which abbreviations are canonical.
var CountIntentKeywords = []string{
	"bách", "khoa", "fpt", "huflit", "hutech", "tdtu", "ptit", "hust",
}
