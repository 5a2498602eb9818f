package console

// Screen identifies one selectable entry of a menu.
type Screen int

const (
	ScreenOpenAccount Screen = iota
	ScreenSwipeCard
	ScreenExit
	ScreenCheckBalance
	ScreenDeposit
	ScreenWithdraw
	ScreenTransfer
	ScreenSignOut
)

var screenTitles = map[Screen]string{
	ScreenOpenAccount:  "Open account",
	ScreenSwipeCard:    "Swipe card to do business",
	ScreenExit:         "Exit",
	ScreenCheckBalance: "Check balance",
	ScreenDeposit:      "Deposit funds",
	ScreenWithdraw:     "Withdraw funds",
	ScreenTransfer:     "Transfer funds",
	ScreenSignOut:      "Sign out",
}

// Title is the label shown in the parent menu.
func (s Screen) Title() string {
	if t, ok := screenTitles[s]; ok {
		return t
	}
	return "Unknown"
}

// Outcome tells the enclosing menu whether to keep looping.
type Outcome int

const (
	Continue Outcome = iota
	Terminate
)

// Menu is a titled list of screens.
type Menu struct {
	Title   string
	Options []Screen
}

// MainMenu is shown at startup.
var MainMenu = Menu{
	Title:   "Welcome to THE online bank!",
	Options: []Screen{ScreenOpenAccount, ScreenSwipeCard, ScreenExit},
}

// TransactionMenu is shown after a card has been swiped.
var TransactionMenu = Menu{
	Title: "Transaction menu",
	Options: []Screen{
		ScreenCheckBalance,
		ScreenDeposit,
		ScreenWithdraw,
		ScreenTransfer,
		ScreenSignOut,
	},
}

const (
	menuHeading = "Please choose from the following list:"
	menuPrompt  = "> "
)
