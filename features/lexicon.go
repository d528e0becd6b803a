package features

// Keyword lexicons, PT and FR mixed, stored pre-normalized (lowercase, no
// diacritics). Matching is word-boundary based so "arma" does not fire inside
// "alarma".

var weaponTerms = []string{
	"arma", "armado", "armada", "pistola", "revolver", "fuzil", "espingarda",
	"faca", "facao", "canivete", "machado", "tiro", "tiros", "disparo", "disparos",
	"baleado", "baleada",
	"arme", "pistolet", "fusil", "couteau", "machette", "coup de feu",
}

var bareHandsTerms = []string{
	"soco", "socos", "chute", "chutes", "tapa", "tapas", "espancado", "espancada",
	"espancamento", "maos nuas", "estrangulamento",
	"coup de poing", "coups de poing", "mains nues", "etrangle",
}

var robberyTerms = []string{
	"assalto", "assaltado", "assaltada", "assaltaram", "roubo", "roubado",
	"roubaram", "furto", "furtado", "furtaram", "arrastao",
	"vol", "vole", "braquage", "cambriolage",
}

var aggressionTerms = []string{
	"agressao", "agrediu", "agredido", "agredida", "briga", "brigando",
	"violencia", "espancamento", "linchamento",
	"agression", "agresse", "bagarre", "violence",
}

var fireTerms = []string{
	"incendio", "fogo", "chamas", "queimando", "queimada", "explosao",
	"incendie", "feu", "flammes", "explosion",
}

var trafficTerms = []string{
	"acidente", "atropelamento", "atropelado", "atropelada", "colisao",
	"batida", "capotou", "capotamento", "engavetamento",
	"accident", "collision", "renverse", "percute",
}

var drowningTerms = []string{
	"afogamento", "afogou", "afogando", "afogado", "afogada",
	"noyade", "noye", "noyee",
}

var fractureTerms = []string{
	"fratura", "fraturou", "fraturado", "quebrou o braco", "quebrou a perna",
	"fracture", "fracture du bras",
}

var highFootfallTerms = []string{
	"escola", "creche", "praca", "mercado", "feira", "estacao", "terminal",
	"rodoviaria", "igreja", "shopping", "hospital", "posto de saude",
	"ecole", "place", "marche", "gare", "eglise", "hopital",
}

var deadlyTerms = []string{
	"morto", "morta", "mortos", "morte", "matou", "assassinato", "homicidio",
	"mort", "morte", "tue", "assassinat",
}

// victimTerms maps keywords to victim categories. Order matters: the most
// specific category seen first wins.
var victimTerms = []struct {
	term     string
	category string
}{
	{"bebe", "baby"}, {"recem nascido", "baby"}, {"nourrisson", "baby"},
	{"crianca", "child"}, {"criancas", "child"}, {"menino", "child"}, {"menina", "child"}, {"enfant", "child"},
	{"mulher", "woman"}, {"moca", "woman"}, {"senhora", "woman"}, {"femme", "woman"},
	{"idoso", "elderly"}, {"idosa", "elderly"}, {"velhinho", "elderly"}, {"personne agee", "elderly"}, {"vieil homme", "elderly"},
	{"homem", "man"}, {"rapaz", "man"}, {"senhor", "man"}, {"homme", "man"},
	{"cachorro", "animal"}, {"gato", "animal"}, {"animal", "animal"}, {"chien", "animal"}, {"chat", "animal"},
	{"loja", "shop"}, {"mercadinho", "shop"}, {"comercio", "shop"}, {"magasin", "shop"}, {"boutique", "shop"},
	{"carro", "property"}, {"veiculo", "property"}, {"moto", "property"}, {"casa", "property"}, {"voiture", "property"}, {"maison", "property"},
}

// victimNouns anchor the spoken-count parser ("dois feridos" -> 2).
var victimNouns = []string{
	"ferido", "feridos", "ferida", "feridas", "vitima", "vitimas",
	"morto", "mortos", "morta", "mortas",
	"blesse", "blesses", "blessee", "victime", "victimes",
}

// numberWords is the PT/FR word-to-digit table for victim counts.
var numberWords = map[string]int{
	"um": 1, "uma": 1, "dois": 2, "duas": 2, "tres": 3, "quatro": 4,
	"cinco": 5, "seis": 6, "sete": 7, "oito": 8, "nove": 9, "dez": 10,
	"un": 1, "une": 1, "deux": 2, "trois": 3, "quatre": 4,
	"cinq": 5, "six": 6, "sept": 7, "huit": 8, "neuf": 9, "dix": 10,
}
