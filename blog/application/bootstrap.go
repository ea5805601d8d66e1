package application

import (
	"time"

	"github.com/edublog/edublog/blog/domain"
)

// BootstrapPosts returns the fixed seed collection installed when both the
// local cache and the remote mirror are empty.
func BootstrapPosts() []domain.Post {
	return []domain.Post{
		{
			ID:          1,
			Title:       "Effective Study Techniques for Remote Learning",
			ContentType: domain.ContentTypeBlog,
			Excerpt:     "Discover science-backed study methods that can boost your productivity while learning from home.",
			Content: "# Effective Study Techniques for Remote Learning\n\n" +
				"**Remote learning** has become a significant part of education worldwide. To make the most of it, consider these proven techniques:\n\n" +
				"## 1. Create a Dedicated Study Space\n\n" +
				"Your environment affects your focus. Set up a space that's:\n" +
				"- Free from distractions\n" +
				"- Comfortable but not too comfortable\n" +
				"- Well-lit and well-ventilated\n\n" +
				"## 2. Use the Pomodoro Technique\n\n" +
				"Work in focused 25-minute intervals followed by 5-minute breaks. After four cycles, take a longer break of 15-30 minutes.\n\n" +
				"## 3. Active Recall Practice\n\n" +
				"Don't just read - test yourself! Close your notes and try to recall the information. This strengthens neural pathways and improves retention.",
			Tags:        []string{"study techniques", "remote learning", "productivity"},
			IsPublished: true,
			PublishedAt: "2024-07-01",
			CreatedAt:   time.Date(2024, 7, 1, 10, 0, 0, 0, time.UTC),
			UpdatedAt:   time.Date(2024, 7, 1, 10, 0, 0, 0, time.UTC),
		},
		{
			ID:          2,
			Title:       "From Failing Grades to University Honors",
			ContentType: domain.ContentTypeStory,
			Excerpt:     "How I transformed my academic performance through persistence and finding the right learning methods.",
			Content: "# From Failing Grades to University Honors\n\n" +
				"## The Early Struggles\n\n" +
				"In my freshman year, I was barely passing my classes. The transition from high school to university hit me hard. My study habits weren't working, and I felt overwhelmed by the workload.\n\n" +
				"## The Turning Point\n\n" +
				"After failing two midterms, I knew something had to change. I reached out to my university's academic support center and discovered I had an undiagnosed learning disability. With this new understanding, I could finally develop strategies that worked for me.\n\n" +
				"## The Lesson\n\n" +
				"Sometimes what looks like failure is just a mismatch between your learning style and traditional methods. Don't be afraid to seek help and try different approaches until you find what works for you.",
			Tags:        []string{"success story", "perseverance", "learning disabilities"},
			IsPublished: true,
			PublishedAt: "2024-07-05",
			CreatedAt:   time.Date(2024, 7, 5, 14, 30, 0, 0, time.UTC),
			UpdatedAt:   time.Date(2024, 7, 5, 14, 30, 0, 0, time.UTC),
		},
		{
			ID:          3,
			Title:       "New Scholarship Program Launches for STEM Students",
			ContentType: domain.ContentTypeNews,
			Excerpt:     "A major tech company has announced a $5 million scholarship fund targeting underrepresented groups in STEM fields.",
			Content: "# New Scholarship Program Launches for STEM Students\n\n" +
				"## Program Details\n\n" +
				"Tech giant InnovateCorp has announced a new $5 million scholarship program aimed at increasing diversity in STEM fields. The program will provide full tuition coverage and living stipends to 100 students from underrepresented backgrounds each year.\n\n" +
				"## Eligibility Criteria\n\n" +
				"To qualify, students must:\n" +
				"- Be pursuing degrees in Science, Technology, Engineering, or Mathematics\n" +
				"- Demonstrate financial need\n" +
				"- Maintain a GPA of 3.0 or higher\n\n" +
				"## Application Process\n\n" +
				"Applications open next month and will be accepted until October 15th. Students must submit academic transcripts, two letters of recommendation, and a personal essay explaining their interest in STEM and career goals.",
			Tags:        []string{"scholarships", "STEM", "education news"},
			IsPublished: true,
			PublishedAt: "2024-07-10",
			CreatedAt:   time.Date(2024, 7, 10, 9, 15, 0, 0, time.UTC),
			UpdatedAt:   time.Date(2024, 7, 10, 9, 15, 0, 0, time.UTC),
		},
	}
}
