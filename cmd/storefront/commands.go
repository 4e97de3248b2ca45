package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"strings"

	"pizza-storefront/internal/cart"
	"pizza-storefront/internal/common/format"
	"pizza-storefront/internal/common/validation"
	"pizza-storefront/internal/dashboard"
	"pizza-storefront/internal/models"
	"pizza-storefront/internal/navigation"
	"pizza-storefront/internal/service"
	"pizza-storefront/pkg/catalog"
)

var errNotLoggedIn = errors.New("not logged in; run 'storefront login' first")

func newRegistry() *CommandRegistry {
	r := NewCommandRegistry()

	r.Register(&Command{
		Name:        "login",
		Description: "Log in and remember the session",
		Usage:       "storefront login -email <email> -password <password>",
		Examples:    []string{"storefront login -email d@jwt.com -password diner"},
		Run:         loginCommand,
	})
	r.Register(&Command{
		Name:        "register",
		Description: "Create a diner account and log in",
		Usage:       "storefront register -name <name> -email <email> -password <password>",
		Examples:    []string{"storefront register -name \"pizza diner\" -email d@jwt.com -password diner"},
		Run:         registerCommand,
	})
	r.Register(&Command{
		Name:        "logout",
		Description: "End the session",
		Usage:       "storefront logout",
		Run:         logoutCommand,
	})
	r.Register(&Command{
		Name:        "whoami",
		Description: "Show the logged in user",
		Usage:       "storefront whoami",
		Run:         whoamiCommand,
	})
	r.Register(&Command{
		Name:        "menu",
		Description: "List the pizzas on the menu",
		Usage:       "storefront menu",
		Run:         menuCommand,
	})
	r.Register(&Command{
		Name:        "cart",
		Description: "Build an order across shell commands",
		Usage:       "storefront cart show|add <menuId>...|remove <index>|store <storeId>|clear",
		Examples:    []string{"cart store 1", "cart add 1 2", "cart show"},
		Run:         cartCommand,
	})
	r.Register(&Command{
		Name:        "checkout",
		Description: "Pay for the cart",
		Usage:       "storefront checkout [-verify]",
		Run:         checkoutCommand,
	})
	r.Register(&Command{
		Name:        "order",
		Description: "Order pizzas from a store in one step",
		Usage:       "storefront order -store <storeId> [-verify] <menuId>...",
		Examples:    []string{"storefront order -store 1 1 1 2"},
		Run:         orderCommand,
	})
	r.Register(&Command{
		Name:        "verify",
		Description: "Check that an order token was issued by the pizza factory",
		Usage:       "storefront verify <jwt>",
		Run:         verifyCommand,
	})
	r.Register(&Command{
		Name:        "orders",
		Description: "List your past orders",
		Usage:       "storefront orders",
		Run:         ordersCommand,
	})
	r.Register(&Command{
		Name:        "franchises",
		Description: "List every franchise and its stores",
		Usage:       "storefront franchises",
		Run:         franchisesCommand,
	})
	r.Register(&Command{
		Name:        "my-franchises",
		Description: "List the franchises you administer",
		Usage:       "storefront my-franchises",
		Run:         myFranchisesCommand,
	})
	r.Register(&Command{
		Name:        "create-franchise",
		Description: "Create a franchise (admin)",
		Usage:       "storefront create-franchise -name <name> -admin <email>[,<email>...]",
		Examples:    []string{"storefront create-franchise -name pizzaPocket -admin f@jwt.com"},
		Run:         createFranchiseCommand,
	})
	r.Register(&Command{
		Name:        "close-franchise",
		Description: "Close a franchise and all of its stores (admin)",
		Usage:       "storefront close-franchise -id <franchiseId> [-yes]",
		Run:         closeFranchiseCommand,
	})
	r.Register(&Command{
		Name:        "create-store",
		Description: "Open a store in a franchise",
		Usage:       "storefront create-store -franchise <franchiseId> -name <name>",
		Examples:    []string{"storefront create-store -franchise 1 -name SLC"},
		Run:         createStoreCommand,
	})
	r.Register(&Command{
		Name:        "close-store",
		Description: "Close a store",
		Usage:       "storefront close-store -franchise <franchiseId> -store <storeId> [-yes]",
		Run:         closeStoreCommand,
	})
	r.Register(&Command{
		Name:        "docs",
		Description: "Show the API documentation",
		Usage:       "storefront docs [-type service|factory] [-file catalog.json]",
		Examples:    []string{"storefront docs", "storefront docs -type factory", "storefront docs -file configs/catalog.json"},
		Run:         docsCommand,
	})
	r.Register(&Command{
		Name:        "dashboard",
		Description: "Show a dashboard",
		Usage:       "storefront dashboard diner|franchise|admin",
		Run:         dashboardCommand,
	})
	r.Register(&Command{
		Name:        "nav",
		Description: "Show the pages available to you",
		Usage:       "storefront nav [path]",
		Examples:    []string{"storefront nav", "storefront nav /admin-dashboard/create-franchise"},
		Run:         navCommand,
	})
	r.Register(&Command{
		Name:        "shell",
		Description: "Start an interactive storefront session",
		Usage:       "storefront shell",
		Run:         shellCommand,
	})

	return r
}

// parse builds the named command's flag set with define and parses args.
func (a *App) parse(name string, args []string, define func(fs *flag.FlagSet)) (*flag.FlagSet, error) {
	cmd, _ := a.commands.Lookup(name)
	fs := cmd.NewFlagSet(a.errOut)
	if define != nil {
		define(fs)
	}
	return fs, fs.Parse(args)
}

func (a *App) requireUser(ctx context.Context) (*models.User, error) {
	user, err := a.svc.GetUser(ctx)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, errNotLoggedIn
	}
	return user, nil
}

// ==========================================
// Authentication
// ==========================================

type userOutput struct {
	ID       models.ID `json:"id"`
	Name     string    `json:"name"`
	Email    string    `json:"email"`
	Roles    []string  `json:"roles"`
	Initials string    `json:"initials"`
}

func (a *App) showUser(user *models.User) error {
	v := userOutput{
		ID:       user.ID,
		Name:     user.Name,
		Email:    user.Email,
		Roles:    dashboard.FormatRoles(user),
		Initials: user.Initials(),
	}
	return a.render(v, func(w io.Writer) {
		fmt.Fprintf(w, "[%s] %s <%s>\n", v.Initials, v.Name, v.Email)
		fmt.Fprintf(w, "role: %s\n", strings.Join(v.Roles, ", "))
	})
}

func loginCommand(ctx context.Context, a *App, args []string) error {
	var email, password string
	if _, err := a.parse("login", args, func(fs *flag.FlagSet) {
		fs.StringVar(&email, "email", "", "Account email")
		fs.StringVar(&password, "password", "", "Account password")
	}); err != nil {
		return err
	}

	user, err := a.svc.Login(ctx, email, password)
	if err != nil {
		return err
	}
	return a.showUser(user)
}

func registerCommand(ctx context.Context, a *App, args []string) error {
	var name, email, password string
	if _, err := a.parse("register", args, func(fs *flag.FlagSet) {
		fs.StringVar(&name, "name", "", "Full name")
		fs.StringVar(&email, "email", "", "Account email")
		fs.StringVar(&password, "password", "", "Account password")
	}); err != nil {
		return err
	}

	user, err := a.svc.Register(ctx, name, email, password)
	if err != nil {
		return err
	}
	return a.showUser(user)
}

func logoutCommand(ctx context.Context, a *App, args []string) error {
	if _, err := a.parse("logout", args, nil); err != nil {
		return err
	}
	err := a.svc.Logout(ctx)
	a.cart.Reset()
	if err != nil {
		return err
	}
	fmt.Fprintln(a.errOut, "Logged out.")
	return nil
}

func whoamiCommand(ctx context.Context, a *App, args []string) error {
	if _, err := a.parse("whoami", args, nil); err != nil {
		return err
	}
	user, err := a.requireUser(ctx)
	if err != nil {
		return err
	}
	return a.showUser(user)
}

// ==========================================
// Ordering
// ==========================================

func menuCommand(ctx context.Context, a *App, args []string) error {
	if _, err := a.parse("menu", args, nil); err != nil {
		return err
	}
	menu, err := a.svc.GetMenu(ctx)
	if err != nil {
		return err
	}
	return a.render(menu, func(w io.Writer) {
		table := NewTableWriter("ID", "Pizza", "Description", "Price")
		for _, item := range menu {
			table.AddRow(item.ID.String(), item.Title, item.Description, format.PriceFloat(item.Price))
		}
		table.Print(w)
	})
}

// selectStore points c at storeID, looking up its franchise.
func (a *App) selectStore(ctx context.Context, c *cart.Cart, storeID string) error {
	franchises, err := a.svc.GetFranchises(ctx)
	if err != nil {
		return err
	}
	for _, option := range cart.StoreOptions(franchises) {
		if option.StoreID.String() == storeID {
			c.SelectStore(option)
			return nil
		}
	}
	return fmt.Errorf("store %s not found", storeID)
}

func addItems(c *cart.Cart, menu models.Menu, ids []string) error {
	for _, id := range ids {
		item, ok := menu.Find(models.ID(id))
		if !ok {
			return fmt.Errorf("pizza %s is not on the menu", id)
		}
		c.Add(item)
	}
	return nil
}

type cartOutput struct {
	Order models.Order `json:"order"`
	Count int          `json:"count"`
	Total string       `json:"total"`
	Ready bool         `json:"ready"`
}

func (a *App) showCart(c *cart.Cart) error {
	v := cartOutput{Order: c.Order(), Count: c.Count(), Total: c.FormattedTotal(), Ready: c.CanCheckout()}
	return a.render(v, func(w io.Writer) {
		store := v.Order.StoreID.String()
		if store == "" {
			store = "none"
		}
		fmt.Fprintf(w, "Store: %s\n", store)
		for i, item := range v.Order.Items {
			fmt.Fprintf(w, "  %d. %s  %s\n", i, item.Description, format.PriceFloat(item.Price))
		}
		fmt.Fprintf(w, "Selected pizzas: %d\n", v.Count)
		fmt.Fprintf(w, "Total: %s\n", v.Total)
	})
}

func cartCommand(ctx context.Context, a *App, args []string) error {
	fs, err := a.parse("cart", args, nil)
	if err != nil {
		return err
	}
	rest := fs.Args()
	if len(rest) == 0 {
		return a.showCart(a.cart)
	}

	switch rest[0] {
	case "show":
	case "add":
		menu, err := a.svc.GetMenu(ctx)
		if err != nil {
			return err
		}
		if err := addItems(a.cart, menu, rest[1:]); err != nil {
			return err
		}
	case "remove":
		var index int
		if len(rest) != 2 {
			return fmt.Errorf("usage: cart remove <index>")
		}
		if _, err := fmt.Sscanf(rest[1], "%d", &index); err != nil || !a.cart.Remove(index) {
			return fmt.Errorf("no cart item at %s", rest[1])
		}
	case "store":
		if len(rest) != 2 {
			return fmt.Errorf("usage: cart store <storeId>")
		}
		if err := a.selectStore(ctx, a.cart, rest[1]); err != nil {
			return err
		}
	case "clear":
		a.cart.Reset()
	default:
		return fmt.Errorf("unknown cart action %q", rest[0])
	}
	return a.showCart(a.cart)
}

type deliveryOutput struct {
	dashboard.DeliveryView
	Verification *dashboard.Verification `json:"verification,omitempty"`
}

// pay takes c through payment and delivery, emptying it once the order is placed.
func (a *App) pay(ctx context.Context, c *cart.Cart, verify bool) error {
	order, err := c.Pending()
	if err != nil {
		return err
	}
	user, err := a.svc.GetUser(ctx)
	if err != nil {
		return err
	}

	payment := dashboard.NewPayment(user, order)
	if target, redirect := payment.Redirect(); redirect {
		return fmt.Errorf("%w (%s)", errNotLoggedIn, target.Path)
	}
	a.log.Info("Paying for order", map[string]interface{}{
		"storeId": order.StoreID.String(),
		"items":   len(order.Items),
		"total":   payment.Total(),
	})

	delivery, err := payment.Pay(ctx, a.svc)
	if err != nil {
		return err
	}
	c.Reset()

	out := deliveryOutput{DeliveryView: delivery.View()}
	if verify {
		if out.Verification, err = delivery.Verify(ctx, a.svc); err != nil {
			return err
		}
	}
	return a.render(out, func(w io.Writer) {
		fmt.Fprintln(w, out.Title)
		fmt.Fprintf(w, "order ID: %s\n", out.OrderID)
		fmt.Fprintf(w, "pie count: %d\n", out.PieCount)
		fmt.Fprintf(w, "total: %s\n", out.Total)
		fmt.Fprintf(w, "jwt: %s\n", out.Token)
		if out.Verification != nil {
			writeVerification(w, out.Verification)
		}
	})
}

func checkoutCommand(ctx context.Context, a *App, args []string) error {
	var verify bool
	if _, err := a.parse("checkout", args, func(fs *flag.FlagSet) {
		fs.BoolVar(&verify, "verify", false, "Verify the order token after paying")
	}); err != nil {
		return err
	}
	return a.pay(ctx, a.cart, verify)
}

func orderCommand(ctx context.Context, a *App, args []string) error {
	var storeID string
	var verify bool
	fs, err := a.parse("order", args, func(fs *flag.FlagSet) {
		fs.StringVar(&storeID, "store", "", "Store to order from")
		fs.BoolVar(&verify, "verify", false, "Verify the order token after paying")
	})
	if err != nil {
		return err
	}

	c := cart.New(a.log)
	if storeID != "" {
		if err := a.selectStore(ctx, c, storeID); err != nil {
			return err
		}
	}
	if fs.NArg() > 0 {
		menu, err := a.svc.GetMenu(ctx)
		if err != nil {
			return err
		}
		if err := addItems(c, menu, fs.Args()); err != nil {
			return err
		}
	}
	return a.pay(ctx, c, verify)
}

func writeVerification(w io.Writer, v *dashboard.Verification) {
	fmt.Fprintln(w, v.Title)
	fmt.Fprintln(w, v.Message)
	if len(v.Payload) > 0 {
		fmt.Fprintf(w, "payload: %s\n", v.Payload)
	}
	if v.Claims != nil && v.Claims.Order != nil {
		fmt.Fprintf(w, "order in token: %s (%d pies)\n", v.Claims.Order.ID, len(v.Claims.Order.Items))
	}
}

func verifyCommand(ctx context.Context, a *App, args []string) error {
	fs, err := a.parse("verify", args, nil)
	if err != nil {
		return err
	}
	if fs.NArg() != 1 {
		return fmt.Errorf("usage: storefront verify <jwt>")
	}

	v, err := (&dashboard.Delivery{Token: fs.Arg(0)}).Verify(ctx, a.svc)
	if err != nil {
		return err
	}
	return a.render(v, func(w io.Writer) { writeVerification(w, v) })
}

// ==========================================
// Dashboards
// ==========================================

func ordersCommand(ctx context.Context, a *App, args []string) error {
	if _, err := a.parse("orders", args, nil); err != nil {
		return err
	}
	return dinerDashboard(ctx, a)
}

func dinerDashboard(ctx context.Context, a *App) error {
	user, err := a.svc.GetUser(ctx)
	if err != nil {
		return err
	}
	view, err := dashboard.NewDinerDashboard(ctx, a.svc, user).View(ctx)
	if err != nil {
		return err
	}
	return a.render(view, func(w io.Writer) {
		fmt.Fprintln(w, view.Title)
		if user != nil {
			fmt.Fprintf(w, "name: %s\nemail: %s\nrole: %s\n\n", view.Name, view.Email, strings.Join(view.Roles, ", "))
		}
		if view.Placeholder != nil {
			writePlaceholder(w, view.Placeholder)
			return
		}
		table := NewTableWriter("ID", "Price", "Date")
		for _, row := range view.Orders {
			table.AddRow(row.ID.String(), row.Price, row.Date)
		}
		table.Print(w)
	})
}

func franchiseDashboard(ctx context.Context, a *App) error {
	user, err := a.svc.GetUser(ctx)
	if err != nil {
		return err
	}
	view, err := dashboard.NewFranchiseDashboard(ctx, a.svc, user).View(ctx)
	if err != nil {
		return err
	}
	return a.render(view, func(w io.Writer) {
		if view.Placeholder != nil {
			writePlaceholder(w, view.Placeholder)
			return
		}
		fmt.Fprintln(w, view.Name)
		writeStores(w, view.Stores)
	})
}

func adminDashboard(ctx context.Context, a *App) error {
	user, err := a.svc.GetUser(ctx)
	if err != nil {
		return err
	}
	view, err := dashboard.NewAdminDashboard(ctx, a.svc, user).View(ctx)
	if err != nil {
		return err
	}
	return a.render(view, func(w io.Writer) {
		if view.Placeholder != nil {
			writePlaceholder(w, view.Placeholder)
			return
		}
		fmt.Fprintln(w, view.Title)
		table := NewTableWriter("Franchise", "Franchisee", "Store", "Revenue")
		for _, row := range view.Franchises {
			table.AddRow(row.Name, row.Admins, "", "")
			for _, s := range row.Stores {
				table.AddRow("", "", s.Name, s.Revenue)
			}
		}
		table.Print(w)
	})
}

func dashboardCommand(ctx context.Context, a *App, args []string) error {
	fs, err := a.parse("dashboard", args, nil)
	if err != nil {
		return err
	}
	switch fs.Arg(0) {
	case "diner", "":
		return dinerDashboard(ctx, a)
	case "franchise":
		return franchiseDashboard(ctx, a)
	case "admin":
		return adminDashboard(ctx, a)
	default:
		return fmt.Errorf("unknown dashboard %q (use diner, franchise or admin)", fs.Arg(0))
	}
}

func writePlaceholder(w io.Writer, p *dashboard.Placeholder) {
	if p.Title != "" {
		fmt.Fprintln(w, p.Title)
	}
	fmt.Fprintln(w, p.Message)
	if p.ActionLabel != "" {
		fmt.Fprintf(w, "%s: %s\n", p.ActionLabel, p.ActionHref)
	}
}

func writeStores(w io.Writer, stores []dashboard.StoreRow) {
	table := NewTableWriter("ID", "Store", "Revenue")
	for _, s := range stores {
		table.AddRow(s.ID.String(), s.Name, s.Revenue)
	}
	table.Print(w)
}

// ==========================================
// Franchises
// ==========================================

func writeFranchises(w io.Writer, franchises []models.Franchise) {
	table := NewTableWriter("ID", "Franchise", "Store ID", "Store")
	for _, f := range franchises {
		table.AddRow(f.ID.String(), f.Name, "", "")
		for _, s := range f.Stores {
			table.AddRow("", "", s.ID.String(), s.Name)
		}
	}
	table.Print(w)
}

func franchisesCommand(ctx context.Context, a *App, args []string) error {
	if _, err := a.parse("franchises", args, nil); err != nil {
		return err
	}
	franchises, err := a.svc.GetFranchises(ctx)
	if err != nil {
		return err
	}
	return a.render(franchises, func(w io.Writer) { writeFranchises(w, franchises) })
}

func myFranchisesCommand(ctx context.Context, a *App, args []string) error {
	if _, err := a.parse("my-franchises", args, nil); err != nil {
		return err
	}
	user, err := a.requireUser(ctx)
	if err != nil {
		return err
	}
	franchises, err := a.svc.GetFranchise(ctx, user)
	if err != nil {
		return err
	}
	return a.render(franchises, func(w io.Writer) { writeFranchises(w, franchises) })
}

func createFranchiseCommand(ctx context.Context, a *App, args []string) error {
	var name, admins string
	if _, err := a.parse("create-franchise", args, func(fs *flag.FlagSet) {
		fs.StringVar(&name, "name", "", "Franchise name")
		fs.StringVar(&admins, "admin", "", "Comma separated franchisee emails")
	}); err != nil {
		return err
	}

	franchise := models.Franchise{Name: name}
	for _, email := range strings.Split(admins, ",") {
		if email = strings.TrimSpace(email); email != "" {
			franchise.Admins = append(franchise.Admins, models.FranchiseAdmin{Email: email})
		}
	}

	created, err := a.svc.CreateFranchise(ctx, franchise)
	if err != nil {
		return err
	}
	return a.render(created, func(w io.Writer) {
		fmt.Fprintf(w, "Created franchise %s (%s)\n", created.Name, created.ID)
	})
}

// findFranchise resolves id against the franchise list so confirmations can
// name it. An unknown id still yields a franchise carrying that id.
func (a *App) findFranchise(ctx context.Context, id string) (models.Franchise, error) {
	franchises, err := a.svc.GetFranchises(ctx)
	if err != nil {
		return models.Franchise{}, err
	}
	for _, f := range franchises {
		if f.ID.String() == id {
			return f, nil
		}
	}
	return models.Franchise{ID: models.ID(id), Name: id}, nil
}

func (a *App) confirm(question string, yes bool) bool {
	if yes {
		return true
	}
	fmt.Fprintln(a.errOut, question)
	fmt.Fprintln(a.errOut, "Rerun with -yes to confirm.")
	return false
}

func closeFranchiseCommand(ctx context.Context, a *App, args []string) error {
	var id string
	var yes bool
	if _, err := a.parse("close-franchise", args, func(fs *flag.FlagSet) {
		fs.StringVar(&id, "id", "", "Franchise to close")
		fs.BoolVar(&yes, "yes", false, "Skip the confirmation")
	}); err != nil {
		return err
	}
	if err := validation.ValidateIdentifier("franchiseId", models.ID(id)); err != nil {
		return err
	}

	franchise, err := a.findFranchise(ctx, id)
	if err != nil {
		return err
	}
	if !a.confirm(dashboard.CloseFranchiseConfirmation(franchise), yes) {
		return nil
	}
	if err := a.svc.CloseFranchise(ctx, franchise); err != nil {
		return err
	}
	fmt.Fprintf(a.errOut, "Closed franchise %s.\n", franchise.Name)
	return nil
}

func createStoreCommand(ctx context.Context, a *App, args []string) error {
	var franchiseID, name string
	if _, err := a.parse("create-store", args, func(fs *flag.FlagSet) {
		fs.StringVar(&franchiseID, "franchise", "", "Franchise to open the store in")
		fs.StringVar(&name, "name", "", "Store name")
	}); err != nil {
		return err
	}

	created, err := a.svc.CreateStore(ctx, models.Franchise{ID: models.ID(franchiseID)}, models.Store{Name: name})
	if err != nil {
		return err
	}
	return a.render(created, func(w io.Writer) {
		fmt.Fprintf(w, "Created store %s (%s)\n", created.Name, created.ID)
	})
}

func closeStoreCommand(ctx context.Context, a *App, args []string) error {
	var franchiseID, storeID string
	var yes bool
	if _, err := a.parse("close-store", args, func(fs *flag.FlagSet) {
		fs.StringVar(&franchiseID, "franchise", "", "Franchise owning the store")
		fs.StringVar(&storeID, "store", "", "Store to close")
		fs.BoolVar(&yes, "yes", false, "Skip the confirmation")
	}); err != nil {
		return err
	}
	if err := validation.ValidateIdentifier("franchiseId", models.ID(franchiseID)); err != nil {
		return err
	}
	if err := validation.ValidateIdentifier("storeId", models.ID(storeID)); err != nil {
		return err
	}

	franchise, err := a.findFranchise(ctx, franchiseID)
	if err != nil {
		return err
	}
	store, ok := franchise.FindStore(models.ID(storeID))
	if !ok {
		store = models.Store{ID: models.ID(storeID), Name: storeID}
	}
	if !a.confirm(dashboard.CloseStoreConfirmation(franchise, store), yes) {
		return nil
	}
	if err := a.svc.CloseStore(ctx, franchise, store); err != nil {
		return err
	}
	fmt.Fprintf(a.errOut, "Closed store %s.\n", store.Name)
	return nil
}

// ==========================================
// Docs and navigation
// ==========================================

func docsCommand(ctx context.Context, a *App, args []string) error {
	var docType, file string
	if _, err := a.parse("docs", args, func(fs *flag.FlagSet) {
		fs.StringVar(&docType, "type", service.DocsService, "Which docs to fetch: service or factory")
		fs.StringVar(&file, "file", "", "Read a saved catalog instead of fetching")
	}); err != nil {
		return err
	}

	var docs *catalog.Catalog
	var err error
	if file != "" {
		docs, err = catalog.LoadCatalog(file)
	} else {
		docs, err = a.svc.Docs(ctx, docType)
	}
	if err != nil {
		return err
	}

	return a.render(docs, func(w io.Writer) {
		if docs.Version != "" {
			fmt.Fprintf(w, "API version %s\n\n", docs.Version)
		}
		for _, ep := range docs.Sorted() {
			fmt.Fprintln(w, ep.Title())
			if ep.Description != "" {
				fmt.Fprintf(w, "    %s\n", ep.Description)
			}
			if ep.Example != "" {
				fmt.Fprintf(w, "    %s\n", ep.Example)
			}
		}
	})
}

type navOutput struct {
	Initials   string             `json:"initials,omitempty"`
	Nav        []string           `json:"nav"`
	Footer     []string           `json:"footer"`
	Breadcrumb []navigation.Crumb `json:"breadcrumb,omitempty"`
	Page       string             `json:"page,omitempty"`
	Allowed    *bool              `json:"allowed,omitempty"`
}

func itemTitles(items []navigation.Item) []string {
	out := make([]string, 0, len(items))
	for _, item := range items {
		out = append(out, item.Title)
	}
	return out
}

func navCommand(ctx context.Context, a *App, args []string) error {
	fs, err := a.parse("nav", args, nil)
	if err != nil {
		return err
	}
	user, err := a.svc.GetUser(ctx)
	if err != nil {
		return err
	}

	header := navigation.NewHeader("JWT Pizza", navigation.Routes, user)
	v := navOutput{
		Initials: header.Initials,
		Nav:      itemTitles(header.Items),
		Footer:   itemTitles(navigation.Items(navigation.Routes, navigation.SlotFooter, user)),
	}
	if path := fs.Arg(0); path != "" {
		v.Breadcrumb = navigation.Breadcrumb(path)
		if item, ok := navigation.Match(navigation.Routes, path); ok {
			allowed := item.CanView(user)
			v.Page, v.Allowed = item.Title, &allowed
		}
	}

	return a.render(v, func(w io.Writer) {
		if v.Initials != "" {
			fmt.Fprintf(w, "[%s] ", v.Initials)
		}
		fmt.Fprintf(w, "%s | %s\n", header.Title, strings.Join(v.Nav, " | "))
		fmt.Fprintf(w, "footer: %s\n", strings.Join(v.Footer, " | "))
		if len(v.Breadcrumb) > 0 {
			labels := make([]string, 0, len(v.Breadcrumb))
			for _, c := range v.Breadcrumb {
				labels = append(labels, c.Label)
			}
			fmt.Fprintf(w, "%s\n", strings.Join(labels, " > "))
			switch {
			case v.Page == "":
				writePlaceholder(w, &dashboard.NotFound)
			case !*v.Allowed:
				fmt.Fprintf(w, "%s: not available to you\n", v.Page)
			default:
				fmt.Fprintf(w, "%s\n", v.Page)
			}
		}
	})
}
