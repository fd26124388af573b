// Package console is the interactive text front end over the catalog services.
package console

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"

	"github.com/Domenick1991/airdesk/internal/service/booking"
	"github.com/Domenick1991/airdesk/internal/service/flights"
	"github.com/Domenick1991/airdesk/internal/service/state"
	"github.com/pkg/errors"
)

// errInputClosed ends the session when the input reaches EOF.
var errInputClosed = errors.New("input closed")

type Console struct {
	in  *bufio.Scanner
	out io.Writer

	flights  flights.FlightUseCase
	bookings booking.BookingUseCase
	state    state.StateUseCase
}

func New(in io.Reader, out io.Writer, f flights.FlightUseCase, b booking.BookingUseCase, s state.StateUseCase) *Console {
	return &Console{
		in:       bufio.NewScanner(in),
		out:      out,
		flights:  f,
		bookings: b,
		state:    s,
	}
}

// Run drives the main menu until the user exits, the input ends or ctx is
// canceled.
func (c *Console) Run(ctx context.Context) error {
	c.println("Hello! Welcome to the ticket booking console!")
	err := c.mainMenu(ctx)
	if errors.Is(err, errInputClosed) {
		return nil
	}
	return err
}

func (c *Console) mainMenu(ctx context.Context) error {
	for {
		if err := ctx.Err(); err != nil {
			return err
		}
		c.println()
		c.println("Main menu. The following functions are available:")
		c.println("1: Manage airlines")
		c.println("2: Manage flights")
		c.println("3: Manage ticket reservations")
		c.println("4: Manage files")
		c.println("0: Exit program")

		choice, err := c.choose(4)
		if err != nil {
			return err
		}
		switch choice {
		case 0:
			c.println("Bye!")
			return nil
		case 1:
			err = c.airlineMenu(ctx)
		case 2:
			err = c.flightMenu(ctx)
		case 3:
			err = c.ticketMenu(ctx)
		case 4:
			err = c.fileMenu(ctx)
		}
		if err != nil {
			return err
		}
	}
}

func (c *Console) airlineMenu(ctx context.Context) error {
	for {
		c.println()
		c.println("Airline menu. The following functions are available:")
		c.println("These are the known airlines:")
		for _, a := range c.flights.ListAirlines(ctx) {
			c.printf("  %s\n", a.Name)
		}
		c.println("1: Create new airline")
		c.println("2: Delete airline")
		c.println("0: Go back")

		choice, err := c.choose(2)
		if err != nil {
			return err
		}
		switch choice {
		case 0:
			return nil
		case 1:
			err = c.createAirline(ctx)
		case 2:
			err = c.deleteAirline(ctx)
		}
		if err != nil {
			return err
		}
	}
}

func (c *Console) createAirline(ctx context.Context) error {
	c.println("Please enter a name for the new airline.")
	name, err := c.readString("name:", "Be a bit more creative!")
	if err != nil {
		return err
	}
	if _, err := c.flights.CreateAirline(ctx, name); err != nil {
		c.println(err)
	}
	return nil
}

func (c *Console) deleteAirline(ctx context.Context) error {
	c.println("You can delete an airline. Please enter a valid number:")
	c.println("0: Cancel deletion and go back")
	airline, err := c.chooseAirline(ctx)
	if err != nil || airline < 0 {
		return err
	}
	if err := c.flights.DeleteAirline(ctx, airline); err != nil {
		c.println(err)
	}
	return nil
}

func (c *Console) flightMenu(ctx context.Context) error {
	for {
		c.println()
		c.println("Flight menu. The following functions are available:")
		c.println("1: List flights")
		c.println("2: Create new flight")
		c.println("3: Delete flight")
		c.println("4: Change flight's price")
		c.println("0: Go back")

		choice, err := c.choose(4)
		if err != nil {
			return err
		}
		switch choice {
		case 0:
			return nil
		case 1:
			c.listFlights(ctx)
		case 2:
			err = c.createFlight(ctx)
		case 3:
			err = c.deleteFlight(ctx)
		case 4:
			err = c.repriceFlight(ctx)
		}
		if err != nil {
			return err
		}
	}
}

func (c *Console) listFlights(ctx context.Context) {
	c.println("Currently available flights:")
	n := 0
	for _, a := range c.flights.ListAirlines(ctx) {
		c.printf("%s:\n", a.Name)
		for _, f := range a.Flights {
			n++
			c.printf("  %d: %s\n", n, flightLine(f))
		}
	}
}

func (c *Console) createFlight(ctx context.Context) error {
	c.println("First, you need to choose an airline. Press 0 to cancel:")
	airline, err := c.chooseAirline(ctx)
	if err != nil || airline < 0 {
		return err
	}

	c.println("Is this new flight international (1) or domestic (2)? 0 to cancel.")
	kind, err := c.choose(2)
	if err != nil || kind == 0 {
		return err
	}

	input := flights.CreateFlightInput{Kind: "international"}
	if kind == 2 {
		input.Kind = "domestic"
	}
	if input.FlightNumber, err = c.readLine("Please enter a flight number:"); err != nil {
		return err
	}
	if input.Destination, err = c.readLine("Enter a destination:"); err != nil {
		return err
	}
	input.Distance, err = c.readFloat("What is the flight distance? Enter length in kilometres:",
		func(v float64) bool { return v > 0 }, "Flight must be longer than that!")
	if err != nil {
		return err
	}
	input.Price, err = c.readPrice()
	if err != nil {
		return err
	}

	view, err := c.flights.CreateFlight(ctx, airline, input)
	if err != nil {
		c.println(err)
		return nil
	}
	c.printf("The price is %.2f.\n", view.Price)
	return nil
}

func (c *Console) deleteFlight(ctx context.Context) error {
	airline, flight, err := c.chooseAirlineFlight(ctx)
	if err != nil || flight < 0 {
		return err
	}
	voided, err := c.flights.DeleteFlight(ctx, airline, flight)
	if err != nil {
		c.println(err)
		return nil
	}
	if voided > 0 {
		c.printf("%d reservation(s) for that flight were cancelled.\n", voided)
	}
	return nil
}

func (c *Console) repriceFlight(ctx context.Context) error {
	airline, flight, err := c.chooseAirlineFlight(ctx)
	if err != nil || flight < 0 {
		return err
	}
	price, err := c.readPrice()
	if err != nil {
		return err
	}
	view, err := c.flights.RepriceFlight(ctx, airline, flight, price)
	if err != nil {
		c.println(err)
		return nil
	}
	c.printf("The price is %.2f.\n", view.Price)
	return nil
}

func (c *Console) ticketMenu(ctx context.Context) error {
	for {
		c.println()
		c.println("Ticket menu. The following functions are available:")
		c.println("1: List ticket reservations")
		c.println("2: Create new ticket reservation")
		c.println("3: Delete reservation")
		c.println("0: Go back")

		choice, err := c.choose(3)
		if err != nil {
			return err
		}
		switch choice {
		case 0:
			return nil
		case 1:
			c.listTickets(ctx)
		case 2:
			err = c.createTicket(ctx)
		case 3:
			err = c.deleteTicket(ctx)
		}
		if err != nil {
			return err
		}
	}
}

func (c *Console) listTickets(ctx context.Context) []booking.TicketView {
	tickets := c.bookings.ListTickets(ctx)
	for i, t := range tickets {
		c.printf("%d: %s\n", i+1, ticketLine(t))
	}
	return tickets
}

func (c *Console) createTicket(ctx context.Context) error {
	c.println("This creates a reservation. You can cancel this process by entering 0 at any point.")
	airline, flight, err := c.chooseAirlineFlight(ctx)
	if err != nil || flight < 0 {
		return err
	}
	name, err := c.readString("Now enter the passenger's name. The ticket will be created for that person.",
		"Please enter a name.")
	if err != nil || name == "0" {
		return err
	}

	ticket, err := c.bookings.CreateReservation(ctx, booking.CreateReservationInput{
		AirlineIndex: airline,
		FlightIndex:  flight,
		Name:         name,
	})
	if err != nil {
		c.println(err)
		return nil
	}
	c.printf("Reserved %s for %s at %.2f.\n", ticket.FlightNumber, ticket.Name, ticket.Price)
	return nil
}

func (c *Console) deleteTicket(ctx context.Context) error {
	c.println("Available tickets:")
	c.println("0: Cancel")
	tickets := c.listTickets(ctx)
	choice, err := c.chooseFrom(len(tickets))
	if err != nil || choice == 0 {
		return err
	}
	refund, err := c.bookings.CancelReservation(ctx, choice-1)
	if err != nil {
		c.println(err)
		return nil
	}
	c.printf("Reservation cancelled, %.2f refunded.\n", refund)
	return nil
}

func (c *Console) fileMenu(ctx context.Context) error {
	for {
		c.println()
		c.println("File menu. The following functions are available:")
		c.println("1: Save")
		c.println("2: Load")
		c.println("3: Restore default state")
		c.println("0: Go back")

		choice, err := c.choose(3)
		if err != nil {
			return err
		}
		switch choice {
		case 0:
			return nil
		case 1:
			if err := c.state.Save(ctx); err != nil {
				c.println(err)
			} else {
				c.println("Saved.")
			}
		case 2:
			c.reportLoad(c.state.Load(ctx))
		case 3:
			c.reportLoad(c.state.RestoreDefaults(ctx))
		}
	}
}

func (c *Console) reportLoad(ok bool, err error) {
	switch {
	case err != nil:
		c.println(err)
	case !ok:
		c.println("Nothing to load, the catalog is unchanged.")
	default:
		c.println("Loaded.")
	}
}

// chooseAirline returns the zero-based airline position, or -1 on cancel.
func (c *Console) chooseAirline(ctx context.Context) (int, error) {
	airlines := c.flights.ListAirlines(ctx)
	for _, a := range airlines {
		c.printf("%d: %s\n", a.Index+1, a.Name)
	}
	choice, err := c.chooseFrom(len(airlines))
	return choice - 1, err
}

// chooseAirlineFlight walks airline then flight selection; flight is -1 when
// the user cancelled at either step.
func (c *Console) chooseAirlineFlight(ctx context.Context) (int, int, error) {
	c.println("First, you need to choose an airline. Press 0 to cancel:")
	airline, err := c.chooseAirline(ctx)
	if err != nil || airline < 0 {
		return airline, -1, err
	}

	views := c.flights.ListAirlines(ctx)
	if airline >= len(views) {
		return airline, -1, nil
	}
	a := views[airline]
	c.printf("Available flights for %s:\n", a.Name)
	c.println("0: Cancel")
	for _, f := range a.Flights {
		c.printf("%d: %s\n", f.Index+1, flightLine(f))
	}
	choice, err := c.chooseFrom(len(a.Flights))
	return airline, choice - 1, err
}

func (c *Console) chooseFrom(n int) (int, error) {
	return c.readInt("Choose a number!", func(v int) bool { return v >= 0 && v <= n },
		"The number must be an integer from the left column!")
}

func (c *Console) choose(upper int) (int, error) {
	return c.readInt("Choose a number!", func(v int) bool { return v >= 0 && v <= upper },
		fmt.Sprintf("The number must be an integer and between 0 and %d!", upper))
}

func (c *Console) readPrice() (float64, error) {
	return c.readFloat("Please enter ticket price. If you enter 0, the price will be calculated from flight distance.",
		func(v float64) bool { return v >= 0 }, "Price must be a non-negative number")
}

func flightLine(f flights.FlightView) string {
	kind := "domestic"
	if f.International {
		kind = "international"
	}
	return fmt.Sprintf("%s to %s (%s, %.0f km) %.2f", f.FlightNumber, f.Destination, kind, f.Distance, f.Price)
}

func ticketLine(t booking.TicketView) string {
	return fmt.Sprintf("%s: %s %s to %s, %.2f", t.Name, t.Airline, t.FlightNumber, t.Destination, t.Price)
}

func (c *Console) println(a ...any) {
	fmt.Fprintln(c.out, a...)
}

func (c *Console) printf(format string, a ...any) {
	fmt.Fprintf(c.out, format, a...)
}

func (c *Console) readLine(prompt string) (string, error) {
	fmt.Fprint(c.out, prompt+" ")
	if !c.in.Scan() {
		if err := c.in.Err(); err != nil {
			return "", errors.Wrap(err, "read input")
		}
		return "", errInputClosed
	}
	return strings.TrimSpace(c.in.Text()), nil
}

func (c *Console) readString(prompt, invalid string) (string, error) {
	for {
		s, err := c.readLine(prompt)
		if err != nil {
			return "", err
		}
		if s != "" {
			return s, nil
		}
		c.println(invalid)
	}
}

func (c *Console) readInt(prompt string, valid func(int) bool, invalid string) (int, error) {
	for {
		s, err := c.readLine(prompt)
		if err != nil {
			return 0, err
		}
		v, err := strconv.Atoi(s)
		if err == nil && valid(v) {
			return v, nil
		}
		c.println(invalid)
	}
}

func (c *Console) readFloat(prompt string, valid func(float64) bool, invalid string) (float64, error) {
	for {
		s, err := c.readLine(prompt)
		if err != nil {
			return 0, err
		}
		v, err := strconv.ParseFloat(s, 64)
		if err == nil && !math.IsInf(v, 0) && !math.IsNaN(v) && valid(v) {
			return v, nil
		}
		c.println(invalid)
	}
}
