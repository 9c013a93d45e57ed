package telegram_bot

import (
	"sync"
	"time"

	t "gitlab.com/mcosta87/cripto_bot/pkg/types"
)

// Screen identifies which view a chat currently shows. The set is closed:
// dispatch over it is exhaustive and an unknown value is reported to the user
// instead of rendering nothing.
type Screen string

const (
	ScreenHome      Screen = "home"
	ScreenRegister  Screen = "register"
	ScreenLogin     Screen = "login"
	ScreenDashboard Screen = "dashboard"
	ScreenDeposit   Screen = "deposit"
	ScreenPortfolio Screen = "portfolio"
)

// UserSession is the per-chat navigator state: the current screen, the values
// screens hand to each other (wallet id, user name), in-progress form fields
// and the fetched data the dashboard renders. It lives only in memory and is
// gone on restart.
type UserSession struct {
	Screen Screen
	State  string // waiting_* input state within the current screen

	WalletID string
	UserName string

	// auth form, filled field by field
	FormName  string
	FormEmail string

	// dashboard data
	UsdBalance    float64
	BalanceLoaded bool
	Coins         []t.Coin
	CoinsLoaded   bool
	Wallet        *t.Wallet

	// pending trade
	TradeCoin   *t.Coin
	TradeAction string // "buy" or "sell"

	BotMessageID int
	UpdatedAt    time.Time
}

// SessionManager guards all chat sessions.
type SessionManager struct {
	sessions map[int64]*UserSession
	mu       sync.RWMutex
}

func NewSessionManager() *SessionManager {
	return &SessionManager{
		sessions: make(map[int64]*UserSession),
	}
}

// update mutates a session under the lock, creating it if needed.
func (sm *SessionManager) update(tgUserID int64, fn func(*UserSession)) {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	session, exists := sm.sessions[tgUserID]
	if !exists {
		session = &UserSession{Screen: ScreenHome}
		sm.sessions[tgUserID] = session
	}
	fn(session)
	session.UpdatedAt = time.Now()
}

// getSessionVars returns a copy of the session, so callers never share the
// mutable record.
func (sm *SessionManager) getSessionVars(tgUserID int64) (UserSession, bool) {
	sm.mu.RLock()
	defer sm.mu.RUnlock()

	session, exists := sm.sessions[tgUserID]
	if !exists {
		return UserSession{Screen: ScreenHome}, false
	}
	return *session, true
}

func (sm *SessionManager) setState(tgUserID int64, state string) {
	sm.update(tgUserID, func(s *UserSession) { s.State = state })
}

func (sm *SessionManager) getState(tgUserID int64) (string, bool) {
	sm.mu.RLock()
	defer sm.mu.RUnlock()

	session, exists := sm.sessions[tgUserID]
	if !exists {
		return "", false
	}
	return session.State, true
}

func (sm *SessionManager) setScreen(tgUserID int64, screen Screen) {
	sm.update(tgUserID, func(s *UserSession) { s.Screen = screen })
}

func (sm *SessionManager) setBotMessageID(tgUserID int64, messageID int) {
	sm.update(tgUserID, func(s *UserSession) { s.BotMessageID = messageID })
}

func (sm *SessionManager) setFormName(tgUserID int64, name string) {
	sm.update(tgUserID, func(s *UserSession) { s.FormName = name })
}

func (sm *SessionManager) setFormEmail(tgUserID int64, email string) {
	sm.update(tgUserID, func(s *UserSession) { s.FormEmail = email })
}

// setLogin records a successful login. The auth form and any data loaded for
// a previous wallet are dropped.
func (sm *SessionManager) setLogin(tgUserID int64, walletID, userName string) {
	sm.update(tgUserID, func(s *UserSession) {
		s.WalletID = walletID
		s.UserName = userName
		s.FormName = ""
		s.FormEmail = ""
		s.UsdBalance = 0
		s.BalanceLoaded = false
		s.Wallet = nil
		s.TradeCoin = nil
		s.TradeAction = ""
	})
}

func (sm *SessionManager) storeCoins(tgUserID int64, coins []t.Coin) {
	sm.update(tgUserID, func(s *UserSession) {
		s.Coins = coins
		s.CoinsLoaded = true
	})
}

// storeBalanceFor applies a balance only when the session still belongs to
// the wallet the value was fetched for. A late response for a previous wallet
// must never overwrite the current one.
func (sm *SessionManager) storeBalanceFor(tgUserID int64, walletID string, balance float64) bool {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	session, exists := sm.sessions[tgUserID]
	if !exists || session.WalletID != walletID {
		return false
	}
	session.UsdBalance = balance
	session.BalanceLoaded = true
	session.UpdatedAt = time.Now()
	return true
}

// storeWalletFor applies a wallet snapshot under the same staleness rule as
// storeBalanceFor.
func (sm *SessionManager) storeWalletFor(tgUserID int64, walletID string, wallet *t.Wallet) bool {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	session, exists := sm.sessions[tgUserID]
	if !exists || session.WalletID != walletID {
		return false
	}
	session.Wallet = wallet
	session.UsdBalance = wallet.UsdBalance
	session.BalanceLoaded = true
	session.UpdatedAt = time.Now()
	return true
}

func (sm *SessionManager) setTrade(tgUserID int64, coin *t.Coin, action string) {
	sm.update(tgUserID, func(s *UserSession) {
		s.TradeCoin = coin
		s.TradeAction = action
	})
}

func (sm *SessionManager) clearTrade(tgUserID int64) {
	sm.update(tgUserID, func(s *UserSession) {
		s.TradeCoin = nil
		s.TradeAction = ""
	})
}

// clearSession drops everything for a chat, including the login.
func (sm *SessionManager) clearSession(tgUserID int64) {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	delete(sm.sessions, tgUserID)
}

// cleanOldSessions deletes sessions idle for longer than timeout.
func (sm *SessionManager) cleanOldSessions(timeout time.Duration) {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	now := time.Now()
	for tgUserID, session := range sm.sessions {
		if now.Sub(session.UpdatedAt) > timeout {
			delete(sm.sessions, tgUserID)
		}
	}
}
