package i18n

type entry struct {
	key string
	sv  string
}

type pluralEntry struct {
	key     string // English "other" form, also the lookup key
	enOne   string
	svOne   string
	svOther string
}

var entries = []entry{
	// Navigation and layout
	{"Dashboard", "Översikt"},
	{"Employees", "Anställda"},
	{"Language", "Språk"},
	{"Dark mode", "Mörkt läge"},
	{"Light mode", "Ljust läge"},

	// Landing view
	{"Welcome to %s", "Välkommen till %s"},
	{"A server-rendered employee directory with graceful data fallback", "En serverrenderad personalkatalog med reservdata"},
	{"This application includes:", "Applikationen innehåller:"},
	{"Server-rendered views", "Serverrenderade vyer"},
	{"Partial page updates with htmx", "Delvisa siduppdateringar med htmx"},
	{"Light and dark themes", "Ljust och mörkt tema"},
	{"Error boundaries", "Felgränser"},
	{"Query cache with fallback data", "Frågecache med reservdata"},
	{"English and Swedish translations", "Engelska och svenska översättningar"},
	{"PDF and XLSX export", "Export till PDF och XLSX"},
	{"View Employees Feature", "Visa anställda"},

	// Employee directory
	{"Employee Directory", "Personalkatalog"},
	{"Manage team information, departments, and compensation", "Hantera teaminformation, avdelningar och ersättning"},
	{"Refresh", "Uppdatera"},
	{"Retry", "Försök igen"},
	{"Loading...", "Laddar..."},
	{"Loading employees", "Laddar anställda"},
	{"Unable to load employees", "Kunde inte ladda anställda"},
	{"Please check your network connection or try again later.", "Kontrollera din nätverksanslutning eller försök igen senare."},
	{"Data provided by mock service. Connect your API by setting API_BASE_URL.", "Data från testtjänsten. Anslut ditt API genom att sätta API_BASE_URL."},
	{"Data provided by the employees API.", "Data från personal-API:et."},
	{"No employees found.", "Inga anställda hittades."},
	{"Employee", "Anställd"},
	{"Job Title", "Befattning"},
	{"Department", "Avdelning"},
	{"Location", "Plats"},
	{"Salary", "Lön"},
	{"Hire Date", "Anställningsdatum"},
	{"Hired %s", "Anställd %s"},
	{"Export PDF", "Exportera PDF"},
	{"Export XLSX", "Exportera XLSX"},
	{"Updated %s", "Uppdaterad %s"},
	{"Sample data", "Exempeldata"},
	{"Automatic", "Automatiskt"},
	{"Live data", "Livedata"},
	{"Refreshing...", "Uppdaterar..."},

	// Not found and error boundary
	{"Page Not Found", "Sidan hittades inte"},
	{"The page you're looking for doesn't exist or has been moved.", "Sidan du letar efter finns inte eller har flyttats."},
	{"Go to Home", "Till startsidan"},
	{"Something went wrong", "Något gick fel"},
	{"We're sorry, but something unexpected happened. Please try refreshing the page.", "Något oväntat hände. Försök att ladda om sidan."},
	{"Try Again", "Försök igen"},

	// Relative time, numeric "auto" phrases
	{"this minute", "denna minut"},
	{"this hour", "denna timme"},
	{"today", "i dag"},
	{"yesterday", "i går"},
	{"tomorrow", "i morgon"},
	{"this week", "denna vecka"},
	{"last week", "förra veckan"},
	{"next week", "nästa vecka"},
	{"this month", "denna månad"},
	{"last month", "förra månaden"},
	{"next month", "nästa månad"},
	{"this year", "i år"},
	{"last year", "i fjol"},
	{"next year", "nästa år"},
}

var plurals = []pluralEntry{
	{"%d team members", "%d team member", "%d teammedlem", "%d teammedlemmar"},

	{"in %d minutes", "in %d minute", "om %d minut", "om %d minuter"},
	{"%d minutes ago", "%d minute ago", "för %d minut sedan", "för %d minuter sedan"},
	{"in %d hours", "in %d hour", "om %d timme", "om %d timmar"},
	{"%d hours ago", "%d hour ago", "för %d timme sedan", "för %d timmar sedan"},
	{"in %d days", "in %d day", "om %d dag", "om %d dagar"},
	{"%d days ago", "%d day ago", "för %d dag sedan", "för %d dagar sedan"},
	{"in %d weeks", "in %d week", "om %d vecka", "om %d veckor"},
	{"%d weeks ago", "%d week ago", "för %d vecka sedan", "för %d veckor sedan"},
	{"in %d months", "in %d month", "om %d månad", "om %d månader"},
	{"%d months ago", "%d month ago", "för %d månad sedan", "för %d månader sedan"},
	{"in %d years", "in %d year", "om %d år", "om %d år"},
	{"%d years ago", "%d year ago", "för %d år sedan", "för %d år sedan"},
}
