package filtering

// The rule tables below are data, not control flow, so they can be tuned and
// unit-tested independently of the predicates that consume them. All entries
// are lower-case; jobs are lower-cased by the normalizer before matching.

// techStackVocabulary is the fallback role vocabulary: a job mentioning any
// of these passes the role filter even without a configured allowed-role hit.
var techStackVocabulary = []string{
	"python", "javascript", "typescript", "react", "next", "nextjs",
	"node", "nodejs", "nest", "nestjs",
	"full stack", "fullstack", "full-stack",
	"frontend", "backend", "web developer",
	"ai", "ml", "machine learning", "artificial intelligence",
	"mern", "mean", "mongodb", "database",
	"fastapi", "software engineer",
}

// experienceRejectMarkers disqualify a job outright. They are checked before
// any fresh-graduate marker; an absolute disqualifier always wins.
var experienceRejectMarkers = []string{
	"senior", "sr.", "sr ", "lead", "principal", "staff engineer", "director",
	"5+ year", "6+ year", "7+ year", "8+ year", "10+ year",
	"5 year", "6 year", "7 year", "8 year",
	"mid-level", "mid level", "intermediate", "experienced",
	"3+ year", "4+ year", "3 year", "4 year",
}

// freshMarkers indicate an entry-level position.
var freshMarkers = []string{
	"fresh", "junior", "entry", "graduate", "intern", "trainee",
	"0-1", "0-2", "1-2", "associate", "entry level", "entry-level",
}

// entryTitleNouns back the conservative fallback: with neither reject nor
// fresh markers present, a generic role noun in the title is enough.
var entryTitleNouns = []string{"developer", "engineer", "programmer"}

// excludedTech lists technologies outside the candidate's stack. A title
// mention or repeated emphasis rejects the job.
var excludedTech = []string{
	"flutter", "swift", "kotlin", "ios", "android",
	"angular", "vue", "vue.js",
	".net", "c#", "csharp", "asp.net",
	"laravel", "php", "symfony",
	"ruby", "rails", "ruby on rails",
	"golang", "go developer",
	"salesforce", "sap", "oracle",
	"shopify", "wordpress", "drupal",
	"unity", "unreal", "game dev",
	"devops", "sre", "infrastructure", "network engineer",
	"qa", "test", "quality assurance", "sdet",
}
