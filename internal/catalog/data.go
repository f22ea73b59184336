package catalog

const All = "All"

const (
	PriceUnder500K = "< 500K"
	Price500KTo1M  = "500K - 1M"
	Price1MTo2M    = "1M - 2M"
	PriceOver2M    = "> 2M"
)

var (
	Categories  = []string{All, "Programming", "Data Science", "Design", "Marketing", "Business"}
	Levels      = []string{All, string(LevelBeginner), string(LevelIntermediate), string(LevelAdvanced)}
	PriceRanges = []string{All, PriceUnder500K, Price500KTo1M, Price1MTo2M, PriceOver2M}
)

func seedProducts() []Product {
	return []Product{
		{
			ID:              "1",
			Name:            "React TypeScript Masterclass",
			Price:           899000,
			OriginalPrice:   1299000,
			Image:           "https://images.unsplash.com/photo-1633356122544-f134324a6cee?w=400&h=300&fit=crop",
			Description:     "Học React với TypeScript từ cơ bản đến nâng cao",
			LongDescription: "Khóa học toàn diện về React và TypeScript. Bạn sẽ học cách xây dựng ứng dụng web hiện đại với React hooks, context API, và TypeScript để tạo ra code an toàn và dễ bảo trì.",
			Category:        "Programming",
			Instructor:      "Nguyễn Văn A",
			Duration:        "20 giờ",
			Level:           LevelIntermediate,
			Rating:          4.8,
			ReviewCount:     1250,
			Tags:            []string{"React", "TypeScript", "Frontend", "Web Development"},
		},
		{
			ID:              "2",
			Name:            "Python Data Science",
			Price:           699000,
			OriginalPrice:   999000,
			Image:           "https://images.unsplash.com/photo-1526379095098-d400fd0bf935?w=400&h=300&fit=crop",
			Description:     "Phân tích dữ liệu với Python và các thư viện ML",
			LongDescription: "Khóa học chuyên sâu về Data Science với Python. Học cách sử dụng pandas, numpy, matplotlib, scikit-learn để phân tích dữ liệu và xây dựng mô hình machine learning.",
			Category:        "Data Science",
			Instructor:      "Trần Thị B",
			Duration:        "25 giờ",
			Level:           LevelAdvanced,
			Rating:          4.9,
			ReviewCount:     890,
			Tags:            []string{"Python", "Data Science", "Machine Learning", "Analytics"},
		},
		{
			ID:              "3",
			Name:            "UI/UX Design Fundamentals",
			Price:           599000,
			Image:           "https://images.unsplash.com/photo-1561070791-2526d30994b5?w=400&h=300&fit=crop",
			Description:     "Thiết kế giao diện người dùng hiện đại và trải nghiệm tốt",
			LongDescription: "Học các nguyên tắc thiết kế UI/UX, sử dụng Figma, Adobe XD để tạo ra giao diện đẹp và trải nghiệm người dùng tối ưu.",
			Category:        "Design",
			Instructor:      "Lê Văn C",
			Duration:        "15 giờ",
			Level:           LevelBeginner,
			Rating:          4.7,
			ReviewCount:     567,
			Tags:            []string{"UI/UX", "Design", "Figma", "Adobe XD"},
		},
		{
			ID:              "4",
			Name:            "Node.js Backend Development",
			Price:           799000,
			OriginalPrice:   1199000,
			Image:           "https://images.unsplash.com/photo-1555066931-4365d14bab8c?w=400&h=300&fit=crop",
			Description:     "Xây dựng API và backend với Node.js và Express",
			LongDescription: "Học cách xây dựng RESTful API, authentication, database integration với Node.js, Express, MongoDB. Tạo ra backend mạnh mẽ cho ứng dụng web.",
			Category:        "Programming",
			Instructor:      "Phạm Thị D",
			Duration:        "18 giờ",
			Level:           LevelIntermediate,
			Rating:          4.6,
			ReviewCount:     432,
			Tags:            []string{"Node.js", "Express", "Backend", "API"},
		},
		{
			ID:              "5",
			Name:            "Digital Marketing Strategy",
			Price:           499000,
			Image:           "https://images.unsplash.com/photo-1460925895917-afdab827c52f?w=400&h=300&fit=crop",
			Description:     "Chiến lược marketing kỹ thuật số hiệu quả",
			LongDescription: "Học các chiến lược marketing online, SEO, social media marketing, content marketing để tăng doanh số và phát triển thương hiệu.",
			Category:        "Marketing",
			Instructor:      "Hoàng Văn E",
			Duration:        "12 giờ",
			Level:           LevelBeginner,
			Rating:          4.5,
			ReviewCount:     789,
			Tags:            []string{"Marketing", "SEO", "Social Media", "Content"},
		},
		{
			ID:              "6",
			Name:            "Machine Learning với TensorFlow",
			Price:           1299000,
			OriginalPrice:   1599000,
			Image:           "https://images.unsplash.com/photo-1555949963-ff9fe0c870eb?w=400&h=300&fit=crop",
			Description:     "Deep Learning và AI với TensorFlow",
			LongDescription: "Khóa học nâng cao về Machine Learning và Deep Learning. Học cách xây dựng neural networks, CNN, RNN với TensorFlow và Keras.",
			Category:        "Data Science",
			Instructor:      "Vũ Thị F",
			Duration:        "30 giờ",
			Level:           LevelAdvanced,
			Rating:          4.9,
			ReviewCount:     234,
			Tags:            []string{"Machine Learning", "TensorFlow", "Deep Learning", "AI"},
		},
		{
			ID:              "7",
			Name:            "Mobile App Development với Flutter",
			Price:           899000,
			Image:           "https://images.unsplash.com/photo-1512941937669-90a1b58e7e9c?w=400&h=300&fit=crop",
			Description:     "Phát triển ứng dụng mobile cross-platform",
			LongDescription: "Học Flutter để tạo ứng dụng mobile cho cả iOS và Android. Sử dụng Dart language và Flutter framework để xây dựng app hiệu suất cao.",
			Category:        "Programming",
			Instructor:      "Đỗ Văn G",
			Duration:        "22 giờ",
			Level:           LevelIntermediate,
			Rating:          4.7,
			ReviewCount:     345,
			Tags:            []string{"Flutter", "Mobile", "Dart", "Cross-platform"},
		},
		{
			ID:              "8",
			Name:            "Business Analytics với Excel",
			Price:           399000,
			Image:           "https://images.unsplash.com/photo-1551288049-bebda4e38f71?w=400&h=300&fit=crop",
			Description:     "Phân tích dữ liệu kinh doanh với Excel",
			LongDescription: "Học cách sử dụng Excel để phân tích dữ liệu kinh doanh, tạo dashboard, báo cáo và đưa ra quyết định dựa trên dữ liệu.",
			Category:        "Business",
			Instructor:      "Ngô Thị H",
			Duration:        "10 giờ",
			Level:           LevelBeginner,
			Rating:          4.4,
			ReviewCount:     678,
			Tags:            []string{"Excel", "Analytics", "Business", "Dashboard"},
		},
	}
}
