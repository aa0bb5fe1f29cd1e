package ephemeralmail

import "slices"

// Domain is the part of an email address after the @.
//
// A Domain is either one of the catalog domains declared below or a custom
// domain. Custom domains are plain values of the type: any string that is not
// in the catalog. Since the value is its own string form, a custom domain that
// spells a catalog entry is that catalog entry.
type Domain string

// Mail.tm domains.
const (
	DomainEdnyNet Domain = "edny.net"
)

// Muellmail domains.
const (
	DomainTenMinMailDe       Domain = "10minmail.de"
	DomainTenMinutenMailXyz  Domain = "10minutenmail.xyz"
	DomainExistiertNet       Domain = "existiert.net"
	DomainFliegenderFish     Domain = "fliegender.fish"
	DomainJagaEmail          Domain = "jaga.email"
	DomainMdzEmail           Domain = "mdz.email"
	DomainMuellMailCom       Domain = "muellmail.com"
	DomainMuelleMailCom      Domain = "muellemail.com"
	DomainMuellMonster       Domain = "muell.monster"
	DomainMuellIcu           Domain = "muell.icu"
	DomainMuellIo            Domain = "muell.io"
	DomainMuellXyz           Domain = "muell.xyz"
	DomainMagSpamNet         Domain = "magspam.net"
	DomainFukaruCom          Domain = "fukaru.com"
	DomainOidaIcu            Domain = "oida.icu"
	DomainPapierkorbMe       Domain = "papierkorb.me"
	DomainSpamCare           Domain = "spam.care"
	DomainTonneTo            Domain = "tonne.to"
	DomainUltraFyi           Domain = "ultra.fyi"
	DomainWegwerfEmailDe     Domain = "wegwerfemail.de"
	DomainDsgvoParty         Domain = "dsgvo.party"
	DomainKnickerbockerbanDe Domain = "knickerbockerban.de"
	DomainLambsauceDe        Domain = "lambsauce.de"
	DomainRamenMailDe        Domain = "ramenmail.de"
	DomainJi5De              Domain = "ji5.de"
	DomainJi6De              Domain = "ji6.de"
	DomainJi7De              Domain = "ji7.de"
	DomainSudernDe           Domain = "sudern.de"
	DomainHihiLol            Domain = "hihi.lol"
	DomainKeinDate           Domain = "kein.date"
	DomainHolioDay           Domain = "holio.day"
	DomainCornHolioDay       Domain = "corn.holio.day"
	DomainBungHolioDay       Domain = "bung.holio.day"
	DomainStacysMom          Domain = "stacys.mom"
)

// FakeMail.net domains.
const (
	DomainFileSavedOrg Domain = "filesaved.org"
)

// TempMail.lol domains.
const (
	DomainTerribleCoffeeOrg      Domain = "terriblecoffee.org"
	DomainUnderseaGolfCom        Domain = "underseagolf.com"
	DomainJailBreakEverythingCom Domain = "jailbreakeverything.com"
	DomainAwesome47Com           Domain = "awesome47.com"
	DomainExpiredToasterOrg      Domain = "expiredtoaster.org"
	DomainUndeadBankCom          Domain = "undeadbank.com"
)

var mailTmDomains = []Domain{DomainEdnyNet}

var muellmailDomains = []Domain{
	DomainTenMinMailDe,
	DomainTenMinutenMailXyz,
	DomainExistiertNet,
	DomainFliegenderFish,
	DomainJagaEmail,
	DomainMdzEmail,
	DomainMuellMailCom,
	DomainMuelleMailCom,
	DomainMuellMonster,
	DomainMuellIcu,
	DomainMuellIo,
	DomainMuellXyz,
	DomainMagSpamNet,
	DomainFukaruCom,
	DomainOidaIcu,
	DomainPapierkorbMe,
	DomainSpamCare,
	DomainTonneTo,
	DomainUltraFyi,
	DomainWegwerfEmailDe,
	DomainDsgvoParty,
	DomainKnickerbockerbanDe,
	DomainLambsauceDe,
	DomainRamenMailDe,
	DomainJi5De,
	DomainJi6De,
	DomainJi7De,
	DomainSudernDe,
	DomainHihiLol,
	DomainKeinDate,
	DomainHolioDay,
	DomainCornHolioDay,
	DomainBungHolioDay,
	DomainStacysMom,
}

var fakeMailNetDomains = []Domain{DomainFileSavedOrg}

var tempMailLolDomains = []Domain{
	DomainTerribleCoffeeOrg,
	DomainUnderseaGolfCom,
	DomainJailBreakEverythingCom,
	DomainAwesome47Com,
	DomainExpiredToasterOrg,
	DomainUndeadBankCom,
}

// catalog holds every known domain in declaration order.
var catalog = slices.Concat(mailTmDomains, muellmailDomains, fakeMailNetDomains, tempMailLolDomains)

// catalogIndex is the membership set for catalog.
var catalogIndex = func() map[Domain]struct{} {
	m := make(map[Domain]struct{}, len(catalog))
	for _, d := range catalog {
		m[d] = struct{}{}
	}
	return m
}()

// AllDomains returns every catalog domain in catalog order.
// Custom domains are never included. The returned slice is a copy.
func AllDomains() []Domain {
	return slices.Clone(catalog)
}

// ParseDomain converts s into a Domain. It never fails: strings that do not
// match a catalog entry exactly become custom domains.
func ParseDomain(s string) Domain {
	return Domain(s)
}

// String returns the domain name.
func (d Domain) String() string {
	return string(d)
}

// IsCustom reports whether d is outside the domain catalog.
func (d Domain) IsCustom() bool {
	_, known := catalogIndex[d]
	return !known
}
