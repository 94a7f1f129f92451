package handlers

// Speaker is one entry in the home page speaker lineup.
type Speaker struct {
	Name  string
	Title string
	Topic string
}

// Testimonial is one quote from a past attendee.
type Testimonial struct {
	Quote  string
	Author string
}

// FAQ is one question/answer pair on the home page.
type FAQ struct {
	Question string
	Answer   string
}

// Speakers is the home page lineup. Presentation content only.
var Speakers = []Speaker{
	{Name: "Priya Nair", Title: "Staff Engineer, Flipwire", Topic: "Shipping at scale without burning out"},
	{Name: "Rohan Mehta", Title: "Founder, Lumenstack", Topic: "From campus project to seed round"},
	{Name: "Sara Iqbal", Title: "Security Researcher", Topic: "Breaking things for a living"},
	{Name: "Dev Kapoor", Title: "ML Engineer, Graviton Labs", Topic: "Small models, big products"},
}

// Testimonials shown on the home page.
var Testimonials = []Testimonial{
	{Quote: "The hackathon weekend changed what I thought I could build in 36 hours.", Author: "Ananya, 3rd year CSE"},
	{Quote: "I came for the talks and left with a team and an internship.", Author: "Vikram, 2nd year IT"},
	{Quote: "Best organized student conference I have attended.", Author: "Meera, 4th year ECE"},
}

// FAQs shown on the home page.
var FAQs = []FAQ{
	{Question: "Who can register?", Answer: "Any enrolled university student. Bring your student ID for check-in."},
	{Question: "Do I need a team for the hackathon?", Answer: "Yes. Hackathon tracks need a team of four: a leader and three members."},
	{Question: "Is there a registration fee?", Answer: "No, registration is free for all tracks."},
	{Question: "What is the check-in code?", Answer: "A short code issued with your registration. Keep it handy at the venue and share it with teammates who want to join your team."},
	{Question: "Can I attend both the event and the hackathon?", Answer: "Yes, pick the combined track while registering."},
}
