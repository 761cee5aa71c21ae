package browser

// collectScript scans the document for fillable elements and tags each one
// with a data-opid attribute. It returns the page details as a JSON string
// in the shape of autofill.PageDetails.
const collectScript = `() => {
  const skipTypes = new Set(["hidden", "submit", "reset", "button", "image", "file"]);
  const text = (s) => (s || "").replace(/\s+/g, " ").trim();

  const forms = {};
  document.querySelectorAll("form").forEach((form, i) => {
    const opid = "__form__" + i;
    form.setAttribute("data-opid", opid);
    forms[opid] = {
      opid: opid,
      htmlID: form.id || "",
      htmlName: form.getAttribute("name") || "",
      htmlAction: form.getAttribute("action") || "",
      htmlMethod: form.getAttribute("method") || "",
    };
  });

  const labelFor = (el) => {
    const parts = [];
    if (el.labels) {
      el.labels.forEach((l) => parts.push(text(l.textContent)));
    }
    return parts.join(" ");
  };

  const siblingText = (el, prev) => {
    let n = prev ? el.previousSibling : el.nextSibling;
    while (n) {
      if (n.nodeType === Node.TEXT_NODE && text(n.textContent)) {
        return text(n.textContent);
      }
      if (n.nodeType === Node.ELEMENT_NODE) {
        const tag = n.tagName.toLowerCase();
        if (tag === "input" || tag === "select" || tag === "textarea") {
          return "";
        }
        if (text(n.textContent)) {
          return text(n.textContent);
        }
      }
      n = prev ? n.previousSibling : n.nextSibling;
    }
    return "";
  };

  const viewable = (el) => {
    const style = window.getComputedStyle(el);
    if (style.display === "none" || style.visibility === "hidden" || style.opacity === "0") {
      return false;
    }
    const rect = el.getBoundingClientRect();
    return rect.width > 0 && rect.height > 0;
  };

  const fields = [];
  const elements = document.querySelectorAll("input, select, span[data-bwautofill]");
  elements.forEach((el) => {
    const tag = el.tagName.toLowerCase();
    let type = tag === "span" ? "" : (el.type || "").toLowerCase();
    if (tag === "input" && skipTypes.has(type)) {
      return;
    }

    const opid = "__" + fields.length;
    el.setAttribute("data-opid", opid);
    const form = el.form ? el.form.getAttribute("data-opid") || "" : "";

    const field = {
      opid: opid,
      elementNumber: fields.length,
      viewable: viewable(el),
      disabled: !!el.disabled,
      readonly: !!el.readOnly,
      tagName: tag,
      type: type,
      htmlID: el.id || "",
      htmlName: el.getAttribute("name") || "",
      htmlClass: typeof el.className === "string" ? el.className : "",
      "label-tag": labelFor(el),
      "label-aria": el.getAttribute("aria-label") || "",
      "label-left": siblingText(el, true),
      "label-right": siblingText(el, false),
      "label-top": "",
      placeholder: el.getAttribute("placeholder") || "",
      autoCompleteType: el.getAttribute("autocomplete") || el.getAttribute("x-autocompletetype") || "",
      form: form,
      maxLength: el.maxLength > 0 ? el.maxLength : 0,
      value: tag === "span" ? text(el.textContent) : (el.value || ""),
    };

    if (tag === "select") {
      field.selectInfo = {
        options: Array.from(el.options).map((o) => ({ value: o.value, text: text(o.text) })),
      };
    }
    fields.push(field);
  });

  return JSON.stringify({
    title: document.title,
    url: window.location.href,
    forms: forms,
    fields: fields,
  });
}`

// tagNameScript returns the lower-case tag name of the first element
// matching its selector argument, or "" when nothing matches.
const tagNameScript = `(selector) => {
  const el = document.querySelector(selector);
  return el ? el.tagName.toLowerCase() : "";
}`
