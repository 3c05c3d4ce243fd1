package dialog

import (
	"context"
	"math"

	"github.com/cloudwego/eino/schema"
	"github.com/rs/zerolog"

	"shopbot/internal/catalog"
	"shopbot/internal/pipeline"
	"shopbot/internal/session"
	"shopbot/pkg"
)

// State identifies where the conversation currently is.
type State string

const (
	// StateAwaitingConsent means no search is in flight yet.
	StateAwaitingConsent State = "awaiting_consent"
	// StateResolving means slots are being filled.
	StateResolving State = "resolving"
	// StateDisambiguating means a multi-row result is being narrowed.
	StateDisambiguating State = "disambiguating"
	// StateAnswered means a search finished and the engine asked whether to
	// continue.
	StateAnswered State = "answered"
	// StateEnded is terminal.
	StateEnded State = "ended"
)

// ask identifies the question the engine is currently waiting on. Setting a
// new pending question implicitly clears the previous one.
type ask string

const (
	askNone     ask = ""
	askCategory ask = "category"
	askBrand    ask = "brand"
	askProduct  ask = "product"
	askContinue ask = "continue"
)

// slotBundle is the conversation's slot state. Mutated only by the engine.
type slotBundle struct {
	category    catalog.Category
	hasCategory bool
	brand       string
	hasBrand    bool
	price       pkg.PriceRange
	searchType  pkg.SearchType
	hasSearch   bool
	sort        pkg.SortMode
}

func newSlotBundle() slotBundle {
	return slotBundle{price: pkg.NewPriceRange()}
}

// Config carries the engine's presentation knobs.
type Config struct {
	ResultLimit int // max rows shown per listing, 0 = unlimited
}

// Engine is the dialogue state machine. One instance owns one conversation;
// nothing here is shared, so independent conversations are independent
// engine values.
type Engine struct {
	catalog   *catalog.Catalog
	pipeline  *pipeline.Pipeline
	store     session.Store
	sessionID string
	cfg       Config
	log       zerolog.Logger

	state      State
	pending    ask
	lastSlot   ask // most recently asked slot question, for mismatch recovery
	slots      slotBundle
	candidates []catalog.Entry
}

// New builds an engine in its initial state.
func New(cat *catalog.Catalog, pipe *pipeline.Pipeline, store session.Store, sessionID string, cfg Config, log zerolog.Logger) *Engine {
	return &Engine{
		catalog:   cat,
		pipeline:  pipe,
		store:     store,
		sessionID: sessionID,
		cfg:       cfg,
		log:       log,
		state:     StateAwaitingConsent,
		slots:     newSlotBundle(),
	}
}

// State returns the current conversation state.
func (e *Engine) State() State { return e.state }

// Category returns the category slot.
func (e *Engine) Category() (catalog.Category, bool) {
	return e.slots.category, e.slots.hasCategory
}

// Brand returns the brand slot.
func (e *Engine) Brand() (string, bool) {
	return e.slots.brand, e.slots.hasBrand
}

// Price returns the current price range slot.
func (e *Engine) Price() pkg.PriceRange { return e.slots.price }

// Open produces the opening prompt of a conversation.
func (e *Engine) Open(ctx context.Context) *TurnOutput {
	out := &TurnOutput{Message: msgOpen}
	e.recordBot(ctx, out.Message)
	return out
}

// AdvanceTurn consumes one user utterance and returns the engine's response.
// Done is set once the session has ended.
func (e *Engine) AdvanceTurn(ctx context.Context, raw string) (*TurnOutput, error) {
	if e.state == StateEnded {
		return &TurnOutput{Message: msgBye, Done: true}, nil
	}

	e.recordUser(ctx, raw)

	a, err := e.pipeline.Analyze(ctx, raw)
	if err != nil {
		return nil, err
	}

	out := e.advance(ctx, a)
	e.recordBot(ctx, out.Message)
	return out, nil
}

func (e *Engine) advance(ctx context.Context, a *pkg.Analysis) *TurnOutput {
	meta := a.Extraction.Meta

	// Quit wins over everything, checked at the top of every turn.
	if meta.Quit {
		e.state = StateEnded
		return &TurnOutput{Message: msgBye, Done: true}
	}

	if e.state == StateDisambiguating {
		return e.disambiguateTurn(ctx, a)
	}

	if e.pending != askNone {
		if meta.Negative {
			if e.pending == askContinue {
				e.state = StateEnded
				return &TurnOutput{Message: msgBye, Done: true}
			}
			e.reset()
			return &TurnOutput{Message: msgStartOver}
		}
		if meta.Affirmative && !hasSlotContent(a.Extraction) {
			if e.pending == askContinue {
				e.reset()
				e.state = StateResolving
				return &TurnOutput{Message: msgWhatNext}
			}
			// Clear the asked flag and ask for specifics.
			e.pending = askNone
			return &TurnOutput{Message: msgSpecifics}
		}
	}

	// A finished search restarts from clean slots when the user answers the
	// continuation prompt with a fresh request.
	if e.state == StateAnswered {
		e.reset()
		e.state = StateResolving
	}

	// A pure greeting costs no question.
	if meta.Greeting && !hasSlotContent(a.Extraction) {
		return &TurnOutput{Message: msgGreeting}
	}

	updated := e.updateSlots(a.Extraction)
	if !updated && !e.slots.hasCategory && !e.slots.hasBrand && !e.slots.price.Bounded() {
		// Parse miss with nothing accumulated: apologize and re-prompt.
		return &TurnOutput{Message: msgNoMatch}
	}

	if e.state == StateAwaitingConsent {
		e.state = StateResolving
	}

	return e.resolve(ctx)
}

// updateSlots applies this turn's extraction on top of the sticky slot
// bundle and reports whether anything changed.
func (e *Engine) updateSlots(ex pkg.Extraction) bool {
	updated := false
	if ex.HasCategory {
		if c, ok := catalog.ParseCategory(ex.Category); ok {
			e.slots.category, e.slots.hasCategory = c, true
			updated = true
		}
	}
	if ex.HasBrand {
		e.slots.brand, e.slots.hasBrand = ex.Brand, true
		updated = true
	}
	if ex.HasPrice {
		if !math.IsInf(ex.Price.Low, -1) {
			e.slots.price.Low = ex.Price.Low
		}
		if !math.IsInf(ex.Price.High, 1) {
			e.slots.price.High = ex.Price.High
		}
		updated = true
	}
	if ex.HasSearch {
		e.slots.searchType, e.slots.hasSearch = ex.SearchType, true
		updated = true
	}
	if ex.HasSort {
		e.slots.sort = ex.Sort
		updated = true
	}
	return updated
}

// resolve re-queries the catalog with the current slots and decides the next
// action: ask for a slot, disambiguate, or answer.
func (e *Engine) resolve(ctx context.Context) *TurnOutput {
	res := e.query(ctx)

	// Mismatched slot pair: invalidate the one asked most recently.
	var apology string
	if e.slots.hasCategory && e.slots.hasBrand && len(res.Rows) == 0 {
		apology = e.dropMismatchedSlot()
		res = e.query(ctx)
	}

	// Implicit disambiguation: adopt a slot the query already pins down.
	if e.slots.hasCategory && !e.slots.hasBrand && len(res.Brands) == 1 {
		e.slots.brand, e.slots.hasBrand = res.Brands[0], true
	} else if !e.slots.hasCategory && e.slots.hasBrand && len(res.Categories) == 1 {
		e.slots.category, e.slots.hasCategory = res.Categories[0], true
	}

	out := e.branch(ctx, e.query(ctx))
	if apology != "" {
		out.Message = apology + " " + out.Message
	}
	return out
}

func (e *Engine) query(ctx context.Context) catalog.QueryResult {
	q := catalog.Query{
		Category:    e.slots.category,
		HasCategory: e.slots.hasCategory,
		Brand:       e.slots.brand,
		HasBrand:    e.slots.hasBrand,
		Price:       e.slots.price,
	}
	res := e.catalog.Search(ctx, q)
	e.log.Debug().
		Int("rows", len(res.Rows)).
		Int("categories", len(res.Categories)).
		Int("brands", len(res.Brands)).
		Msg("catalog queried")
	return res
}

func (e *Engine) dropMismatchedSlot() string {
	brand, label := e.slots.brand, e.slots.category.Label()
	if e.lastSlot == askCategory {
		e.slots.category, e.slots.hasCategory = "", false
	} else {
		e.slots.brand, e.slots.hasBrand = "", false
	}
	e.log.Info().Str("brand", brand).Str("category", label).Msg("slot pair mismatch, clearing last asked slot")
	return "Sorry, we don't have " + brand + " in " + label + "."
}

// branch picks the next question or answer from the current slot pair.
func (e *Engine) branch(ctx context.Context, res catalog.QueryResult) *TurnOutput {
	switch {
	case !e.slots.hasCategory && !e.slots.hasBrand:
		return e.askOpening()

	case e.slots.hasCategory && !e.slots.hasBrand:
		if len(res.Rows) == 0 {
			return e.askContinueAfter(msgEmptyRange)
		}
		e.setPending(askBrand)
		e.lastSlot = askBrand
		return &TurnOutput{
			Message: msgBrands,
			Tables:  []Table{brandTable(catalog.BrandStats(res.Rows))},
		}

	case !e.slots.hasCategory && e.slots.hasBrand:
		if len(res.Rows) == 0 {
			return e.askContinueAfter(msgEmptyRange)
		}
		e.setPending(askCategory)
		e.lastSlot = askCategory
		return &TurnOutput{
			Message: "We have " + e.slots.brand + " in several categories. " + msgCategories,
			Tables:  []Table{categoryTable(catalog.CategoryStats(res.Rows))},
		}

	default: // both slots resolved
		if len(res.Rows) == 0 {
			return e.askContinueAfter(msgEmptyRange)
		}
		if len(res.Rows) == 1 {
			return e.answer(res.Rows[0])
		}
		e.candidates = sortedRows(res.Rows, e.slots.sort)
		e.state = StateDisambiguating
		e.setPending(askProduct)
		return &TurnOutput{
			Message: msgOptions,
			Tables:  []Table{productTable(e.candidates, e.cfg.ResultLimit)},
		}
	}
}

// askOpening lists categories (or brands, when the user asked to browse by
// brand) over the whole catalog within the current price range.
func (e *Engine) askOpening() *TurnOutput {
	rows := catalog.RowsInRange(e.catalog.Entries(), e.slots.price)
	if len(rows) == 0 {
		return e.askContinueAfter(msgEmptyRange)
	}
	if e.slots.hasSearch && e.slots.searchType == pkg.SearchByBrand {
		e.setPending(askBrand)
		e.lastSlot = askBrand
		return &TurnOutput{
			Message: msgBrands,
			Tables:  []Table{brandTable(catalog.BrandStats(rows))},
		}
	}
	e.setPending(askCategory)
	e.lastSlot = askCategory
	return &TurnOutput{
		Message: msgCategories,
		Tables:  []Table{categoryTable(catalog.CategoryStats(rows))},
	}
}

// disambiguateTurn narrows the candidate set with one utterance.
func (e *Engine) disambiguateTurn(ctx context.Context, a *pkg.Analysis) *TurnOutput {
	if wantsBailOut(a.Tokens) {
		e.candidates = nil
		return e.askContinueAfter(msgNoSelection)
	}

	kept, best := narrowCandidates(a.Scoped, e.candidates)
	if best == 0 {
		// Dead-end: nothing matched, re-present the same set and let the
		// user try again or opt out.
		return &TurnOutput{
			Message: msgNoCandidateMatch,
			Tables:  []Table{productTable(e.candidates, e.cfg.ResultLimit)},
		}
	}
	if len(kept) == 1 {
		e.candidates = nil
		return e.answer(kept[0])
	}
	e.candidates = kept
	return &TurnOutput{
		Message: msgNarrowed,
		Tables:  []Table{productTable(e.candidates, e.cfg.ResultLimit)},
	}
}

func (e *Engine) answer(entry catalog.Entry) *TurnOutput {
	e.log.Info().Str("name", entry.Name).Str("brand", entry.Brand).Msg("search resolved")
	out := e.askContinueAfter(msgFound)
	out.Tables = []Table{productTable([]catalog.Entry{entry}, 0)}
	return out
}

// askContinueAfter finishes the current search and asks the continuation
// question.
func (e *Engine) askContinueAfter(message string) *TurnOutput {
	e.state = StateAnswered
	e.setPending(askContinue)
	return &TurnOutput{Message: message + " " + msgAnythingElse}
}

// setPending makes q the only pending question.
func (e *Engine) setPending(q ask) {
	e.pending = q
}

// reset clears the slot bundle and the pending question.
func (e *Engine) reset() {
	e.slots = newSlotBundle()
	e.pending = askNone
	e.lastSlot = askNone
	e.candidates = nil
	e.state = StateAwaitingConsent
}

func hasSlotContent(ex pkg.Extraction) bool {
	return ex.HasCategory || ex.HasBrand || ex.HasPrice || ex.HasSearch
}

func (e *Engine) recordUser(ctx context.Context, text string) {
	if e.store == nil {
		return
	}
	if err := e.store.Append(ctx, e.sessionID, schema.UserMessage(text)); err != nil {
		e.log.Warn().Err(err).Msg("failed to record user message")
	}
}

func (e *Engine) recordBot(ctx context.Context, text string) {
	if e.store == nil {
		return
	}
	if err := e.store.Append(ctx, e.sessionID, schema.AssistantMessage(text, nil)); err != nil {
		e.log.Warn().Err(err).Msg("failed to record bot message")
	}
}

// Prompt texts.
const (
	msgOpen             = "Hi! I can help you find computers, phones, smart home devices, drones, clocks and games. How can I help you?"
	msgGreeting         = "Hello! Tell me what you are looking for, for example \"a cheap phone under 50\"."
	msgBye              = "Bye! Have a nice day."
	msgStartOver        = "No problem, let's start over. What are you looking for?"
	msgWhatNext         = "Great! What would you like to look for?"
	msgSpecifics        = "OK! Please tell me more about what you need."
	msgNoMatch          = "Sorry, there are no products that match your request. Could you rephrase?"
	msgCategories       = "Which category are you interested in?"
	msgBrands           = "OK, we have the following brands. Which brand would you prefer?"
	msgOptions          = "OK, we have the following options for you. Which one would you like?"
	msgNarrowed         = "We still have a few options. Which one would you like?"
	msgNoCandidateMatch = "Sorry, none of these seem to match. You can pick by name or by row number."
	msgNoSelection      = "No problem, leaving it open."
	msgFound            = "Great choice! Here is what we found."
	msgEmptyRange       = "Sorry, there are no products in the specified price range."
	msgAnythingElse     = "Would you like to look for something else?"
)
