package guardrail

// Fixed lexicons, stored pre-normalized (lowercase, no diacritics). The
// remotely-configured alias list extends forbiddenTerms at check time.

// forbiddenTerms names law-enforcement bodies, criminal organizations and
// their slang. Reports naming them are rejected wholesale: the app is for
// describing what happened, not who to blame.
var forbiddenTerms = []string{
	// law enforcement
	"policia militar",
	"policia civil",
	"policia federal",
	"pm",
	"bope",
	"rota",
	"guarda municipal",
	"viatura",
	// criminal organizations and slang
	"comando vermelho",
	"cv",
	"primeiro comando da capital",
	"pcc",
	"terceiro comando",
	"tcp",
	"amigos dos amigos",
	"ada",
	"milicia",
	"faccao",
	"trafico",
	"boca de fumo",
}

// profanity is a coarse slur/profanity list. Triggers the same generic
// rejection path as forbidden terms.
var profanity = []string{
	"merda",
	"porra",
	"caralho",
	"puta",
	"filho da puta",
	"fdp",
	"viado",
	"macaco",
	"desgracado",
	"vagabundo",
	"arrombado",
}

// placeMask replaces whitelisted place names before forbidden-term matching,
// so "Praça da PM Velha" style street names are not false-positived.
const placeMask = "[local]"

// redacted replaces PII and forbidden terms in the suggestion text.
const redacted = "[removido]"
