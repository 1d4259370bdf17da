package main

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/smartrail-planner/internal/planner"
	"github.com/smartrail-planner/internal/railgraph"
)

func printRoutes(w io.Writer, routes []railgraph.Route) {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "#\tDISTANCE (KM)\tHOPS\tROUTE")
	for i, r := range routes {
		fmt.Fprintf(tw, "%d\t%.2f\t%d\t%s\n", i+1, r.Distance, r.Hops(), r)
	}
	tw.Flush()
}

func printPlan(w io.Writer, plan *planner.Plan) {
	fmt.Fprintf(w, "Route: %s\n", plan.Route)
	fmt.Fprintf(w, "Total distance: %.2f km\n\n", plan.Route.Distance)

	if len(plan.Options) == 0 {
		fmt.Fprintln(w, "No trains scheduled.")
		return
	}

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "TRAIN\tTYPE\tCLASS\tBOARDING\tARRIVAL\tDURATION\tESTIMATED FARE")
	for _, o := range plan.Options {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\t%s\t%s\n",
			o.TrainName, o.TrainType, o.ClassType, o.BoardingDate, o.ArrivalDate, o.Duration, formatFare(o.Fare))
	}
	tw.Flush()
}

func formatFare(fare float64) string {
	return fmt.Sprintf("₹%.2f", fare)
}
