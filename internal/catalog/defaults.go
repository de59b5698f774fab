package catalog

var sideHustles = []Category{
	{Name: "coding", Items: []string{"Freelance developer", "Tech consultant", "Web developer"}},
	{Name: "writing", Items: []string{"Content writer", "Copywriter", "Blog creator", "Technical writer"}},
	{Name: "design", Items: []string{"Graphic designer", "UI/UX specialist", "Logo designer", "Product designer"}},
	{Name: "marketing", Items: []string{"Social media manager", "SEO specialist", "Email marketer"}},
	{Name: "photography", Items: []string{"Event photographer", "Stock photo contributor", "Portrait photographer"}},
	{Name: "videography", Items: []string{"Video editor", "YouTube content creator", "Event videographer"}},
	{Name: "teaching", Items: []string{"Online tutor", "Course creator", "Workshop facilitator"}},
	{Name: "data analysis", Items: []string{"Data analyst", "Business intelligence consultant", "Freelance statistician"}},
	{Name: "sales", Items: []string{"Sales consultant", "Affiliate marketer", "Cold outreach specialist"}},
	{Name: "fitness", Items: []string{"Personal trainer", "Fitness blogger", "Online fitness coach"}},
}

var interests = []Category{
	{Name: "creative", Items: []string{"Graphic design", "Content creation"}},
	{Name: "technical", Items: []string{"Coding", "Data analysis"}},
	{Name: "consulting", Items: []string{"Project management", "Strategy consulting"}},
}

var habits = []Category{
	{Name: "freelance developer", Items: []string{"Code for one focused hour every day", "Ship a small portfolio project each month", "Review open job boards every Monday"}},
	{Name: "content writer", Items: []string{"Write 500 words daily", "Read one long-form article a day", "Pitch two publications each week"}},
	{Name: "graphic designer", Items: []string{"Sketch one concept daily", "Post work to a portfolio weekly", "Study one design breakdown a week"}},
	{Name: "social media manager", Items: []string{"Schedule posts a week ahead", "Check engagement metrics daily", "Test one new content format weekly"}},
	{Name: "online tutor", Items: []string{"Prepare lesson notes the night before", "Collect student feedback after each session", "Block fixed weekly teaching hours"}},
	{Name: "personal trainer", Items: []string{"Train yourself before client sessions", "Log client progress after every session", "Share one fitness tip online daily"}},
	{Name: "data analyst", Items: []string{"Practice SQL for 30 minutes daily", "Publish one analysis per month", "Keep a reusable query snippet library"}},
}

var defaultSuggestions = []string{
	"Consider exploring general freelance opportunities",
	"Look into popular gig economy platforms like Upwork or Fiverr",
}

// SideHustles is the catalog used for skill matching.
func SideHustles() *Mapping { return NewMapping(sideHustles) }

func Interests() *Mapping { return NewMapping(interests) }

func Habits() *Mapping { return NewMapping(habits) }

func DefaultSuggestions() []string {
	out := make([]string, len(defaultSuggestions))
	copy(out, defaultSuggestions)
	return out
}
