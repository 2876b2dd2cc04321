package subject

// ExtractTitles returns the title of every record in resp["works"], in order.
// Records whose title is missing or not a string are omitted. resp is not
// modified and the result is never nil.
func ExtractTitles(resp Response) TitleList {
	works, ok := lookupWorks(resp)
	if !ok {
		return TitleList{}
	}

	titles := make(TitleList, 0, len(works))
	for _, record := range works {
		title, ok := lookupTitle(record)
		if !ok {
			continue
		}
		titles = append(titles, title)
	}
	return titles
}

func lookupWorks(resp Response) ([]any, bool) {
	if resp == nil {
		return nil, false
	}
	raw, present := resp["works"]
	if !present {
		return nil, false
	}
	works, ok := raw.([]any)
	return works, ok
}

func lookupTitle(record any) (string, bool) {
	fields, ok := record.(map[string]any)
	if !ok {
		return "", false
	}
	raw, present := fields["title"]
	if !present {
		return "", false
	}
	title, ok := raw.(string)
	return title, ok
}
