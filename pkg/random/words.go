package random

// words is the dictionary used for free-form string generation. Entries
// are short, neutral English words so joined output reads naturally.
var words = []string{
	"alpha", "anchor", "apple", "arrow", "aspen",
	"basin", "beacon", "birch", "bloom", "breeze",
	"canyon", "cedar", "cipher", "cloud", "comet",
	"dawn", "delta", "drift", "dune", "dusk",
	"echo", "ember", "falcon", "fern", "flint",
	"garnet", "glade", "grove", "harbor", "hazel",
	"indigo", "iris", "jade", "juniper", "kelp",
	"lagoon", "lantern", "lark", "lotus", "lunar",
	"maple", "meadow", "mesa", "mist", "north",
	"oasis", "onyx", "opal", "orbit", "osprey",
	"pebble", "pine", "prism", "quartz", "quill",
	"raven", "reef", "ridge", "river", "robin",
	"sage", "sierra", "slate", "solar", "spruce",
	"summit", "thicket", "tide", "topaz", "trail",
	"umber", "vale", "vertex", "willow", "wren",
	"yarrow", "zenith", "zephyr",
}

// firstNames and lastNames feed email address generation.
var firstNames = []string{
	"alex", "casey", "dana", "eli", "harper",
	"jamie", "jordan", "morgan", "quinn", "riley",
	"rowan", "sam", "taylor",
}

var lastNames = []string{
	"anders", "bauer", "clarke", "duval", "eriksen",
	"fischer", "hayes", "ito", "kimura", "larsen",
	"mendez", "novak", "okafor", "reyes", "silva",
}

var emailDomains = []string{
	"example.com", "example.org", "example.net",
	"mail.test", "inbox.test",
}

var urlHosts = []string{
	"example.com", "api.example.com", "www.example.org",
	"app.example.net", "docs.example.dev",
}
