package analyzer

// stopWords is the fixed set of high-frequency, low-information words
// removed before keyword density analysis. Tokens shorter than three
// characters never reach the filter, so two-letter words are omitted.
var stopWords = map[string]struct{}{
	"the": {}, "and": {}, "are": {}, "was": {}, "were": {}, "been": {},
	"being": {}, "have": {}, "has": {}, "had": {}, "having": {}, "does": {},
	"did": {}, "doing": {}, "will": {}, "would": {}, "should": {},
	"could": {}, "can": {}, "cannot": {}, "may": {}, "might": {},
	"must": {}, "shall": {}, "this": {}, "that": {}, "these": {},
	"those": {}, "there": {}, "here": {}, "where": {}, "when": {},
	"what": {}, "which": {}, "who": {}, "whom": {}, "whose": {},
	"why": {}, "how": {}, "all": {}, "any": {}, "both": {}, "each": {},
	"few": {}, "more": {}, "most": {}, "other": {}, "some": {},
	"such": {}, "not": {}, "only": {}, "own": {}, "same": {}, "than": {},
	"too": {}, "very": {}, "just": {}, "but": {}, "for": {}, "with": {},
	"about": {}, "against": {}, "between": {}, "into": {}, "through": {},
	"during": {}, "before": {}, "after": {}, "above": {}, "below": {},
	"from": {}, "down": {}, "out": {}, "off": {}, "over": {}, "under": {},
	"again": {}, "further": {}, "then": {}, "once": {}, "they": {},
	"them": {}, "their": {}, "theirs": {}, "she": {}, "her": {},
	"hers": {}, "him": {}, "his": {}, "its": {}, "our": {}, "ours": {},
	"your": {}, "yours": {}, "you": {}, "himself": {}, "herself": {},
	"itself": {}, "themselves": {}, "yourself": {}, "ourselves": {},
	"myself": {}, "also": {}, "because": {}, "while": {}, "until": {},
	"although": {}, "though": {}, "since": {}, "unless": {}, "whether": {},
	"onto": {}, "upon": {}, "within": {}, "without": {},
	"along": {}, "among": {}, "around": {}, "behind": {}, "beside": {},
	"beyond": {}, "near": {}, "toward": {}, "towards": {},
}
