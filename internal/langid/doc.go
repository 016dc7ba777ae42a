// Package langid infers subtitle languages from Unicode script membership.
//
// Detection is purely rule based: each character is assigned to a script
// class (Han, Hangul, Kana, Latin, CJK punctuation) and languages are chosen
// from aggregate class counts. Kana is treated as the only unambiguous
// Japanese signal because Japanese prose also contains Han characters.
// The package also normalizes user-supplied language codes (ISO 639-1/2 and
// full word forms) to the canonical two-letter values used everywhere else.
package langid
