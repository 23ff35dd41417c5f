package interpret

// Interpretation is the narrative reading of a face.
type Interpretation struct {
	Overview string   `json:"tong-quan"`
	Thirds   Thirds   `json:"tam_dinh"`
	Features Features `json:"ngu_quan"`
	Glabella Glabella `json:"an_duong"`
	Advice   []string `json:"loi_khuyen"`
}

// Thirds covers the three vertical zones of the face.
type Thirds struct {
	Upper    string `json:"thuong_dinh"`
	Middle   string `json:"trung_dinh"`
	Lower    string `json:"ha_dinh"`
	Overview string `json:"tong_quan"`
}

// Features covers the five facial features.
type Features struct {
	Brows     string `json:"long_may"`
	Eyes      string `json:"mat"`
	Nose      string `json:"mui"`
	Ears      string `json:"tai"`
	MouthChin string `json:"mieng_cam"`
}

// Glabella covers the area between the brows.
type Glabella struct {
	Description string `json:"mo_ta"`
	Meaning     string `json:"y_nghia"`
	Assessment  string `json:"danh_gia"`
}

const fallbackOverview = "Dựa trên phân tích khuôn mặt và thông tin cá nhân, đây là một mệnh cục có nhiều tiềm năng phát triển. " +
	"Sự kết hợp giữa các đặc điểm nhân tướng học cho thấy một cuộc đời với nhiều cơ hội và thách thức, " +
	"cần sự nỗ lực và kiên trì để đạt được thành công."

var (
	fallbackThirds = Thirds{
		Upper:    "Vùng trán (Thượng đình) đại diện cho trí tuệ và sự khởi đầu.",
		Middle:   "Vùng từ mày đến mũi (Trung đình) đại diện cho nghị lực và trung vận.",
		Lower:    "Vùng cằm và miệng (Hạ đình) đại diện cho hậu vận và phúc đức.",
		Overview: "Tam đình cân đối thể hiện cuộc đời ổn định.",
	}
	fallbackFeatures = Features{
		Brows:     "Lông mày thể hiện tình cảm và nhân duyên.",
		Eyes:      "Mắt thể hiện thần khí và trí tuệ.",
		Nose:      "Mũi là cung tài bạch, đại diện tài vận.",
		Ears:      "Tai thể hiện phúc thọ và trí tuệ sớm.",
		MouthChin: "Miệng và cằm thể hiện hậu vận và khả năng giao tiếp.",
	}
	fallbackGlabella = Glabella{
		Description: "Ấn đường nằm giữa hai lông mày, thuộc trung đình.",
		Meaning:     "Phản ánh tinh thần, khí vận và sự thông suốt.",
		Assessment:  "Sáng và rộng là dấu hiệu tốt.",
	}
)

// Fallback returns a fresh copy of the fixed interpretation.
func Fallback() *Interpretation {
	return &Interpretation{
		Overview: fallbackOverview,
		Thirds:   fallbackThirds,
		Features: fallbackFeatures,
		Glabella: fallbackGlabella,
		Advice:   []string{},
	}
}
