package memory

import "career-guidance-service/internal/domain"

// ReferenceQuizID identifies the built-in aptitude quiz.
const ReferenceQuizID = "aptitude"

// ReferenceQuiz is the six-question aptitude quiz shipped with the service.
func ReferenceQuiz() domain.Quiz {
	return domain.Quiz{
		ID: ReferenceQuizID,
		Questions: []domain.Question{
			{
				ID:   1,
				Text: "Which activity do you enjoy the most?",
				Options: []domain.Option{
					{Label: "Solving puzzles or building things", Weights: map[domain.Stream]int{domain.Engineering: 2, domain.IT: 1}},
					{Label: "Learning about the human body and health", Weights: map[domain.Stream]int{domain.Medicine: 2}},
					{Label: "Creating art, music, or writing", Weights: map[domain.Stream]int{domain.Arts: 2}},
					{Label: "Analyzing markets or managing money", Weights: map[domain.Stream]int{domain.Commerce: 2}},
				},
			},
			{
				ID:   2,
				Text: "Which subject excites you most?",
				Options: []domain.Option{
					{Label: "Math & Physics", Weights: map[domain.Stream]int{domain.Engineering: 2, domain.IT: 1}},
					{Label: "Biology & Chemistry", Weights: map[domain.Stream]int{domain.Medicine: 2}},
					{Label: "Literature & History", Weights: map[domain.Stream]int{domain.Arts: 2}},
					{Label: "Economics & Business", Weights: map[domain.Stream]int{domain.Commerce: 2}},
				},
			},
			{
				ID:   3,
				Text: "How do you prefer to solve problems?",
				Options: []domain.Option{
					{Label: "Designing systems and models", Weights: map[domain.Stream]int{domain.Engineering: 2}},
					{Label: "Understanding people and improving wellbeing", Weights: map[domain.Stream]int{domain.Medicine: 2, domain.Arts: 1}},
					{Label: "Expressing ideas creatively", Weights: map[domain.Stream]int{domain.Arts: 2}},
					{Label: "Using data to make decisions", Weights: map[domain.Stream]int{domain.Commerce: 2, domain.IT: 1}},
				},
			},
			{
				ID:   4,
				Text: "Pick a project you'd love to work on",
				Options: []domain.Option{
					{Label: "Build a robot or app", Weights: map[domain.Stream]int{domain.Engineering: 2, domain.IT: 2}},
					{Label: "Volunteer at a clinic", Weights: map[domain.Stream]int{domain.Medicine: 2}},
					{Label: "Produce a short film", Weights: map[domain.Stream]int{domain.Arts: 2}},
					{Label: "Start a small business", Weights: map[domain.Stream]int{domain.Commerce: 2}},
				},
			},
			{
				ID:   5,
				Text: "Which environment suits you best?",
				Options: []domain.Option{
					{Label: "Lab or workshop", Weights: map[domain.Stream]int{domain.Engineering: 2, domain.Medicine: 1}},
					{Label: "Hospital or research center", Weights: map[domain.Stream]int{domain.Medicine: 2}},
					{Label: "Studio or stage", Weights: map[domain.Stream]int{domain.Arts: 2}},
					{Label: "Office or trading floor", Weights: map[domain.Stream]int{domain.Commerce: 2}},
				},
			},
			{
				ID:   6,
				Text: "Pick the skill you'd like to master",
				Options: []domain.Option{
					{Label: "Coding & algorithms", Weights: map[domain.Stream]int{domain.IT: 2, domain.Engineering: 1}},
					{Label: "Patient care & diagnosis", Weights: map[domain.Stream]int{domain.Medicine: 2}},
					{Label: "Storytelling & design", Weights: map[domain.Stream]int{domain.Arts: 2}},
					{Label: "Financial analysis", Weights: map[domain.Stream]int{domain.Commerce: 2}},
				},
			},
		},
	}
}

// ReferenceCourses is the built-in course catalog.
func ReferenceCourses() []domain.Course {
	return []domain.Course{
		{ID: 1, Title: "B.Tech Computer Science", Stream: domain.Engineering, Level: "Undergraduate", Duration: "4 years", Description: "Core CS fundamentals with modern software engineering.", Careers: []string{"Software Engineer", "Data Engineer", "SRE"}},
		{ID: 2, Title: "B.Tech Mechanical Engineering", Stream: domain.Engineering, Level: "Undergraduate", Duration: "4 years", Description: "Mechanics, thermodynamics, materials, and manufacturing.", Careers: []string{"Design Engineer", "Automotive Engineer"}},
		{ID: 3, Title: "MBBS", Stream: domain.Medicine, Level: "Undergraduate", Duration: "5.5 years", Description: "Intensive medical program covering diagnosis and treatment.", Careers: []string{"Physician", "Surgeon"}},
		{ID: 4, Title: "BFA Visual Arts", Stream: domain.Arts, Level: "Undergraduate", Duration: "3 years", Description: "Studio practice across painting, sculpture, and digital arts.", Careers: []string{"Artist", "Art Director", "Illustrator"}},
		{ID: 5, Title: "B.Com Finance", Stream: domain.Commerce, Level: "Undergraduate", Duration: "3 years", Description: "Accounting, markets, taxation, and corporate finance.", Careers: []string{"Financial Analyst", "Accountant"}},
		{ID: 6, Title: "Diploma in Web Development", Stream: domain.IT, Level: "Diploma", Duration: "1 year", Description: "Frontend and backend fundamentals for modern web apps.", Careers: []string{"Frontend Dev", "Full-stack Dev"}},
		{ID: 7, Title: "Graphic Design Certification", Stream: domain.Arts, Level: "Certification", Duration: "6 months", Description: "Branding, layout, and digital design tools.", Careers: []string{"Graphic Designer", "UI Designer"}},
		{ID: 8, Title: "BBA", Stream: domain.Commerce, Level: "Undergraduate", Duration: "3 years", Description: "Business administration, marketing, and operations.", Careers: []string{"Operations Manager", "Marketing Exec"}},
	}
}

// ReferenceColleges is the built-in college directory.
func ReferenceColleges() []domain.College {
	eng := []domain.Stream{domain.Engineering}
	engIT := []domain.Stream{domain.Engineering, domain.IT}
	med := []domain.Stream{domain.Medicine}
	return []domain.College{
		{ID: 1, Name: "IIT Kharagpur", State: "West Bengal", Streams: eng, Website: "https://www.iitkgp.ac.in/"},
		{ID: 2, Name: "IIT Bombay", State: "Maharashtra", Streams: eng, Website: "https://www.iitb.ac.in/"},
		{ID: 3, Name: "NIT Durgapur", State: "West Bengal", Streams: eng, Website: "https://www.nitdgp.ac.in/"},
		{ID: 4, Name: "Jadavpur University", State: "West Bengal", Streams: engIT, Website: "https://www.jaduniv.edu.in/"},
		{ID: 5, Name: "College of Engineering, Guindy (CEG) - Anna University", State: "Tamil Nadu", Streams: engIT, Website: "https://www.annauniv.edu/"},
		{ID: 6, Name: "COEP Technological University", State: "Maharashtra", Streams: eng, Website: "https://www.coep.org.in/"},
		{ID: 7, Name: "Government College of Engineering & Textile Technology", State: "West Bengal", Streams: engIT, Website: "https://www.gcetts.ac.in/"},
		{ID: 8, Name: "Government College of Engineering & Leather Technology (GCELT)", State: "West Bengal", Streams: engIT, Website: "https://www.gcelt.gov.in/"},
		{ID: 9, Name: "Kalyani Government Engineering College (KGEC)", State: "West Bengal", Streams: eng, Website: "https://www.kgec.edu.in/"},
		{ID: 10, Name: "IIEST Shibpur", State: "West Bengal", Streams: engIT, Website: "https://www.iiests.ac.in/"},
		{ID: 11, Name: "Medical College, Kolkata", State: "West Bengal", Streams: med, Website: "https://www.medicalcollegekolkata.in/"},
		{ID: 12, Name: "Nil Ratan Sircar Medical College", State: "West Bengal", Streams: med, Website: "https://nrsmc.edu.in/"},
		{ID: 13, Name: "RG Kar Medical College & Hospital, Kolkata", State: "West Bengal", Streams: med, Website: "https://rgkarmch.in/"},
		{ID: 14, Name: "Calcutta National Medical College", State: "West Bengal", Streams: med, Website: "https://www.cnmckolkata.com/"},
		{ID: 15, Name: "Burdwan Medical College", State: "West Bengal", Streams: med, Website: "https://bmcgov.com/"},
		{ID: 16, Name: "Barasat Medical College", State: "West Bengal", Streams: med, Website: "https://barasatgmch.ac.in/"},
	}
}
