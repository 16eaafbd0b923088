package cmd

import (
	"bufio"
	"fmt"
	"io"
	"strings"
)

// knownDietFilters are the filters Spoonacular accepts on the search endpoint.
var knownDietFilters = []string{
	"gluten-free", "ketogenic", "vegetarian", "lacto-vegetarian",
	"ovo-vegetarian", "vegan", "pescetarian", "paleo", "lowFODMAP", "whole30",
}

// resolveIngredients returns the ingredient list from positional args, or
// prompts on the terminal when none were given.
func resolveIngredients(positional []string, in io.Reader, out io.Writer) ([]string, error) {
	if len(positional) > 0 {
		ingredients := splitList(strings.Join(positional, ","))
		if len(ingredients) == 0 {
			return nil, fmt.Errorf("at least one ingredient is required")
		}
		return ingredients, nil
	}

	fmt.Fprint(out, "Separated by commas, enter your available ingredients: ")
	line, err := readLine(in)
	if err != nil {
		return nil, err
	}

	ingredients := splitList(line)
	if len(ingredients) == 0 {
		return nil, fmt.Errorf("at least one ingredient is required")
	}
	return ingredients, nil
}

// promptDietFilters asks for optional dietary filters, mirroring the
// ingredient prompt. A blank line means no filters.
func promptDietFilters(in io.Reader, out io.Writer) ([]string, error) {
	fmt.Fprintf(out, "%s\nSeparated by commas, enter your desired dietary filters (leave blank for none): ",
		strings.Join(knownDietFilters, ", "))

	line, err := readLine(in)
	if err != nil {
		return nil, err
	}
	return splitList(line), nil
}

func readLine(in io.Reader) (string, error) {
	scanner := bufio.NewScanner(in)
	if !scanner.Scan() {
		if err := scanner.Err(); err != nil {
			return "", err
		}
		return "", nil
	}
	return scanner.Text(), nil
}

func splitList(input string) []string {
	parts := strings.Split(input, ",")
	values := make([]string, 0, len(parts))
	for _, part := range parts {
		if item := strings.TrimSpace(part); item != "" {
			values = append(values, item)
		}
	}
	return values
}
