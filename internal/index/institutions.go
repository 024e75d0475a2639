package index

// institutionKeywords scores words that mark the institution part of an
// address segment. Higher scores win.
var institutionKeywords = map[string]int{
	"acad": 30, "academy": 40, "akad": 30, "aachen": 50, "assoc": 20, "cambridge": 90,
	"ctr": 20, "cefet": 50, "center": 60, "centre": 60, "chuo kikuu": 50, "cient": 20,
	"cirad": 50, "coll": 40, "college": 60, "colegio": 40, "companhia": 10, "communities": 10,
	"conservatory": 40, "council": 30, "dept": 20, "egyetemi": 50, "escola": 50, "education": 40,
	"escuela": 50, "embrapa": 70, "espm": 60, "epamig": 60, "epagri": 60, "eyunivesithi": 50,
	"fac": 40, "faculdade": 50, "facultad": 50, "fakultet": 50, "fakultät": 50, "fal": 20,
	"fdn": 20, "fundacion": 40, "foundation": 40, "fundacao": 40, "gradevinski": 30, "grp": 20,
	"higher": 40, "hsch": 50, "hochschule": 50, "hosp": 30, "hgsk": 50, "hogeschool": 50,
	"háskóli": 50, "högskola": 50, "ibmec": 60, "ird": 50, "inivèsite": 50, "ist": 50,
	"istituto": 50, "imd": 60, "institutional": 30, "int": 20, "inst": 40, "institut": 70,
	"institute": 90, "institute of technology": 100, "inyuvesi": 50, "iskola": 50, "iunivesite": 50, "inrae": 70,
	"jaamacad": 50, "jami'a": 50, "kolej": 50, "koulu": 50, "kulanui": 50, "lab.": 30,
	"lab": 30, "labs": 30, "laborat": 40, "learning": 20, "mahadum": 50, "med": 30,
	"medicine": 70, "medical": 70, "museum": 40, "observatory": 50, "oilthigh": 50, "okulu": 50,
	"ollscoile": 50, "oniversite": 50, "politecnico": 70, "polytechnic": 70, "prifysgol": 70, "project": 30,
	"rech": 40, "recherche": 40, "research": 90, "sch": 40, "school": 60, "schule": 50,
	"scuola": 50, "seminary": 40, "skola": 50, "supérieur": 50, "sveučilište": 50, "szkoła": 50,
	"tech": 70, "technical": 70, "technische": 70, "technique": 70, "technological": 70, "uff": 50,
	"ufrrj": 50, "ufruralrj": 50, "ufmg": 50, "ufpb": 50, "ufpe": 50, "ufal": 50,
	"uned": 50, "unep": 50, "unesp": 50, "unibersidad": 50, "unibertsitatea": 50, "unicenp": 50,
	"ucpel": 50, "usp": 70, "ufac": 50, "udesc": 50, "uerj": 50, "univ": 80,
	"universidad": 90, "universidade": 90, "universitas": 90, "universitat": 90, "universitate": 90, "universitato": 90,
	"universite": 90, "universiteit": 90, "universitet": 90, "universitetas": 90, "universiti": 90, "university": 100,
	"università": 90, "universität": 90, "université": 90, "universitāte": 90, "univerza": 90, "univerzita": 90,
	"univerzitet": 90, "univesithi": 90, "uniwersytet": 90, "vniuersitatis": 90, "whare wananga": 50, "yliopisto": 50,
	"yunifasiti": 50, "yunivesite": 50, "yunivhesiti": 50, "zanko": 50, "école": 50, "ülikool": 50,
	"üniversite": 90, "πανεπιστήμιο": 90, "σχολείο": 50, "универзитет": 90, "университет": 90, "універсітэт": 90,
	"школа": 50,
}
